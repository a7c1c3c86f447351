package identity

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

var ref = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "*identity.Builtin", false},
		{"builtin", "*identity.Builtin", false},
		{" Faker ", "*identity.Faker", false},
		{"mimesis", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.name, rand.New(rand.NewSource(1)), ref)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownProvider) {
					t.Fatalf("New(%q) err = %v, want ErrUnknownProvider", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q): %v", tt.name, err)
			}
			if got := typeName(p); got != tt.want {
				t.Errorf("New(%q) = %s, want %s", tt.name, got, tt.want)
			}
		})
	}
}

func typeName(p Provider) string {
	switch p.(type) {
	case *Builtin:
		return "*identity.Builtin"
	case *Faker:
		return "*identity.Faker"
	default:
		return "unknown"
	}
}

func TestProvidersNames(t *testing.T) {
	for _, name := range []string{ProviderBuiltin, ProviderFaker} {
		t.Run(name, func(t *testing.T) {
			p, err := New(name, rand.New(rand.NewSource(7)), ref)
			if err != nil {
				t.Fatal(err)
			}
			for i := 0; i < 50; i++ {
				if p.FirstName() == "" {
					t.Fatal("first name is empty")
				}
				if p.LastName() == "" {
					t.Fatal("last name is empty")
				}
			}
		})
	}
}

func TestProvidersDOBRange(t *testing.T) {
	for _, name := range []string{ProviderBuiltin, ProviderFaker} {
		t.Run(name, func(t *testing.T) {
			p, err := New(name, rand.New(rand.NewSource(7)), ref)
			if err != nil {
				t.Fatal(err)
			}
			for i := 0; i < 500; i++ {
				dob := p.DateOfBirth(18, 75)
				if age := Age(dob, ref); age < 18 || age > 75 {
					t.Fatalf("dob %s gives age %d, want [18,75]", dob.Format("2006-01-02"), age)
				}
				if dob.Hour() != 0 || dob.Minute() != 0 || dob.Location() != time.UTC {
					t.Fatalf("dob %v is not a UTC calendar date", dob)
				}
			}
		})
	}
}

func TestProvidersDeterministic(t *testing.T) {
	for _, name := range []string{ProviderBuiltin, ProviderFaker} {
		t.Run(name, func(t *testing.T) {
			a, _ := New(name, rand.New(rand.NewSource(42)), ref)
			b, _ := New(name, rand.New(rand.NewSource(42)), ref)
			for i := 0; i < 20; i++ {
				if x, y := a.FirstName(), b.FirstName(); x != y {
					t.Fatalf("first names diverged: %q vs %q", x, y)
				}
				if x, y := a.DateOfBirth(18, 75), b.DateOfBirth(18, 75); !x.Equal(y) {
					t.Fatalf("dates diverged: %v vs %v", x, y)
				}
			}
		})
	}
}

func TestDOBWindow(t *testing.T) {
	tests := []struct {
		name         string
		ref          time.Time
		wantEarliest string
		wantLatest   string
	}{
		{
			name:         "mid year",
			ref:          ref,
			wantEarliest: "1949-06-16",
			wantLatest:   "2007-06-15",
		},
		{
			name:         "leap day",
			ref:          time.Date(2024, time.February, 29, 13, 30, 0, 0, time.UTC),
			wantEarliest: "1948-03-01",
			wantLatest:   "2006-02-28",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			earliest, latest := DOBWindow(tt.ref, 18, 75)
			if got := earliest.Format("2006-01-02"); got != tt.wantEarliest {
				t.Errorf("earliest = %s, want %s", got, tt.wantEarliest)
			}
			if got := latest.Format("2006-01-02"); got != tt.wantLatest {
				t.Errorf("latest = %s, want %s", got, tt.wantLatest)
			}
			if Age(earliest, tt.ref) != 75 || Age(latest, tt.ref) != 18 {
				t.Errorf("window edges have ages %d..%d", Age(earliest, tt.ref), Age(latest, tt.ref))
			}
			if Age(earliest.AddDate(0, 0, -1), tt.ref) != 76 {
				t.Error("day before earliest should be 76")
			}
		})
	}
}

func TestAge(t *testing.T) {
	dob := time.Date(2000, time.March, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		ref  time.Time
		want int
	}{
		{time.Date(2018, time.March, 9, 0, 0, 0, 0, time.UTC), 17},
		{time.Date(2018, time.March, 10, 0, 0, 0, 0, time.UTC), 18},
		{time.Date(2018, time.December, 1, 0, 0, 0, 0, time.UTC), 18},
	}
	for _, tt := range tests {
		if got := Age(dob, tt.ref); got != tt.want {
			t.Errorf("Age(%s) = %d, want %d", tt.ref.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestTodayUsesUTCCalendarDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, time.January, 31, 2, 0, 0, 0, ist) // 2025-01-30 20:30 UTC

	if got := Today(now).Format("2006-01-02"); got != "2025-01-30" {
		t.Errorf("Today = %s, want 2025-01-30", got)
	}
	if got := Today(now); got.Location() != time.UTC || got.Hour() != 0 {
		t.Errorf("Today = %v, want UTC midnight", got)
	}
}
