package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date used for date_of_birth everywhere it is serialized.
const DateLayout = "2006-01-02"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// Genders is the uniform sampling population, in draw order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func (g Gender) String() string { return string(g) }

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusBlocked  Status = "BLOCKED"
	StatusClosed   Status = "CLOSED"
)

// Statuses is the weighted sampling population, in draw order.
var Statuses = []Status{StatusActive, StatusInactive, StatusBlocked, StatusClosed}

func (s Status) String() string { return string(s) }

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusBlocked || s == StatusClosed
}

// ParseStatus normalizes input (case/space insensitive).
// Returns (value, true) if valid; otherwise ("", false).
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", false
	}
	return st, true
}

// Columns is the fixed column order of the customer table.
var Columns = []string{
	"customer_id",
	"first_name",
	"middle_name",
	"last_name",
	"date_of_birth",
	"gender",
	"pan_number",
	"status",
}

// Customer is one synthetic row of the OLTP customer table.
type Customer struct {
	CustomerID  int64     `db:"customer_id"`
	FirstName   string    `db:"first_name"`
	MiddleName  string    `db:"middle_name"` // empty for ~80% of rows
	LastName    string    `db:"last_name"`
	DateOfBirth time.Time `db:"date_of_birth"`
	Gender      Gender    `db:"gender"`
	PANNumber   string    `db:"pan_number"`
	Status      Status    `db:"status"`
}

// Row returns the record as strings in Columns order.
func (c Customer) Row() []string {
	return []string{
		strconv.FormatInt(c.CustomerID, 10),
		c.FirstName,
		c.MiddleName,
		c.LastName,
		c.DateOfBirth.Format(DateLayout),
		c.Gender.String(),
		c.PANNumber,
		c.Status.String(),
	}
}

// Values returns the record as driver arguments in Columns order.
func (c Customer) Values() []any {
	return []any{
		c.CustomerID,
		c.FirstName,
		c.MiddleName,
		c.LastName,
		c.DateOfBirth,
		c.Gender.String(),
		c.PANNumber,
		c.Status.String(),
	}
}

type customerJSON struct {
	CustomerID  int64  `json:"customer_id"`
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      Gender `json:"gender"`
	PANNumber   string `json:"pan_number"`
	Status      Status `json:"status"`
}

func (c Customer) MarshalJSON() ([]byte, error) {
	return json.Marshal(customerJSON{
		CustomerID:  c.CustomerID,
		FirstName:   c.FirstName,
		MiddleName:  c.MiddleName,
		LastName:    c.LastName,
		DateOfBirth: c.DateOfBirth.Format(DateLayout),
		Gender:      c.Gender,
		PANNumber:   c.PANNumber,
		Status:      c.Status,
	})
}

func (c *Customer) UnmarshalJSON(b []byte) error {
	var raw customerJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	dob, err := time.Parse(DateLayout, raw.DateOfBirth)
	if err != nil {
		return err
	}
	*c = Customer{
		CustomerID:  raw.CustomerID,
		FirstName:   raw.FirstName,
		MiddleName:  raw.MiddleName,
		LastName:    raw.LastName,
		DateOfBirth: dob,
		Gender:      raw.Gender,
		PANNumber:   raw.PANNumber,
		Status:      raw.Status,
	}
	return nil
}
