package export

import (
	"encoding/csv"
	"io"

	"github.com/jmehdipour/custgen/internal/model"
)

func EncodeCSV(w io.Writer, records []model.Customer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
