package export

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmehdipour/custgen/internal/generator"
	"github.com/jmehdipour/custgen/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRecords() []model.Customer {
	return []model.Customer{
		{
			CustomerID:  301000000001,
			FirstName:   "Aarav",
			LastName:    "Sharma",
			DateOfBirth: time.Date(1990, time.April, 2, 0, 0, 0, 0, time.UTC),
			Gender:      model.GenderMale,
			PANNumber:   "ABCDE0001F",
			Status:      model.StatusActive,
		},
		{
			CustomerID:  301000000002,
			FirstName:   "Priya",
			MiddleName:  "Devika",
			LastName:    "Nair",
			DateOfBirth: time.Date(1961, time.December, 30, 0, 0, 0, 0, time.UTC),
			Gender:      model.GenderFemale,
			PANNumber:   "ABCDE0002F",
			Status:      model.StatusBlocked,
		},
	}
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, sampleRecords()))

	want := "customer_id,first_name,middle_name,last_name,date_of_birth,gender,pan_number,status\n" +
		"301000000001,Aarav,,Sharma,1990-04-02,MALE,ABCDE0001F,ACTIVE\n" +
		"301000000002,Priya,Devika,Nair,1961-12-30,FEMALE,ABCDE0002F,BLOCKED\n"
	assert.Equal(t, want, buf.String())
}

func TestEncodeCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, nil))
	assert.Equal(t, strings.Join(model.Columns, ",")+"\n", buf.String())
}

func TestSameSeedByteIdentical(t *testing.T) {
	opts := generator.DefaultOptions()
	opts.Count = 1000
	opts.ReferenceDate = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	encode := func() []byte {
		records, err := generator.Generate(opts)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, EncodeCSV(&buf, records))
		return buf.Bytes()
	}

	a, b := encode(), encode()
	assert.Equal(t, Checksum(a), Checksum(b))
	assert.True(t, bytes.Equal(a, b))

	rows, err := csv.NewReader(bytes.NewReader(a)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1001)
}

func TestEncodeXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeXLSX(&buf, sampleRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, model.Columns, rows[0])
	assert.Equal(t, "301000000002", rows[2][0])
	assert.Equal(t, "Devika", rows[2][2])
	assert.Equal(t, "1961-12-30", rows[2][4])
	assert.Equal(t, "BLOCKED", rows[2][7])
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{" xlsx ", FormatXLSX, false},
		{"parquet", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownFormat)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestWriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := filepath.Join("data", "oltp_raw")

	res, err := WriteFile(fs, dir, "customer.csv", FormatCSV, sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "customer.csv"), res.Path)

	b, err := afero.ReadFile(fs, res.Path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(b)), res.Bytes)
	assert.Equal(t, Checksum(b), res.Checksum)

	entries, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file left behind")

	// rewrite replaces the file in place
	res2, err := WriteFile(fs, dir, "customer.csv", FormatCSV, sampleRecords()[:1])
	require.NoError(t, err)
	assert.NotEqual(t, res.Checksum, res2.Checksum)
}

func TestWriteFileReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := WriteFile(fs, "out", "customer.csv", FormatCSV, sampleRecords())
	require.Error(t, err)

	exists, _ := afero.Exists(fs, filepath.Join("out", "customer.csv"))
	assert.False(t, exists)
}

func TestWriteFileUnknownFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := WriteFile(fs, "out", "customer.bin", Format("bin"), sampleRecords())
	assert.ErrorIs(t, err, ErrUnknownFormat)

	exists, _ := afero.DirExists(fs, "out")
	assert.False(t, exists, "nothing is created before encoding succeeds")
}
