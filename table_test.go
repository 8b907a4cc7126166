package tabldoc_test

import (
	"testing"

	"github.com/fwojciec/tabldoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	t.Parallel()

	t.Run("merges summary and fields", func(t *testing.T) {
		t.Parallel()

		summary := tabldoc.TableSummary{
			Number:        "1",
			Name:          "MARA",
			Description:   "General Material Data",
			Category:      "TRANSP",
			DeliveryClass: "A",
			DetailURL:     "https://example.com/abap/tabl/mara.html",
		}
		fields := []tabldoc.FieldRecord{
			{Field: "MANDT", Key: true, DataType: "CLNT"},
			{Field: "MATNR", Key: true, DataType: "CHAR"},
		}

		rec := tabldoc.Assemble(summary, fields)

		assert.Equal(t, "1", rec.Number)
		assert.Equal(t, "MARA", rec.Name)
		assert.Equal(t, "General Material Data", rec.Description)
		assert.Equal(t, "TRANSP", rec.Category)
		assert.Equal(t, "A", rec.DeliveryClass)
		assert.Equal(t, fields, rec.Fields)
	})

	t.Run("does not alias the input fields", func(t *testing.T) {
		t.Parallel()

		fields := []tabldoc.FieldRecord{{Field: "MATNR"}}

		rec := tabldoc.Assemble(tabldoc.TableSummary{Name: "MARA"}, fields)
		fields[0].Field = "CHANGED"

		assert.Equal(t, "MATNR", rec.Fields[0].Field)
	})
}

func TestTableRecord_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a named table", func(t *testing.T) {
		t.Parallel()

		rec := &tabldoc.TableRecord{Name: "MARA", Fields: []tabldoc.FieldRecord{{Field: "MATNR"}}}

		require.NoError(t, rec.Validate())
	})

	t.Run("rejects blank table name", func(t *testing.T) {
		t.Parallel()

		rec := &tabldoc.TableRecord{Name: "  "}

		err := rec.Validate()

		require.Error(t, err)
		assert.Equal(t, tabldoc.EINVALID, tabldoc.ErrorCode(err))
	})

	t.Run("rejects blank field name", func(t *testing.T) {
		t.Parallel()

		rec := &tabldoc.TableRecord{Name: "MARA", Fields: []tabldoc.FieldRecord{{Field: " "}}}

		err := rec.Validate()

		require.Error(t, err)
		assert.Equal(t, tabldoc.EINVALID, tabldoc.ErrorCode(err))
	})
}
