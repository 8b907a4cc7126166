package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/tabldoc"
	"github.com/fwojciec/tabldoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain name unchanged", input: "MARA", want: "MARA"},
		{name: "replaces slash and colon", input: "A/B:C", want: "A_B_C"},
		{name: "trims leading and trailing periods", input: ".hidden.", want: "hidden"},
		{name: "namespace prefix", input: "/BIC/AZSALES", want: "_BIC_AZSALES"},
		{name: "replaces every reserved character", input: `a<b>c:d"e/f\g|h?i*j`, want: "a_b_c_d_e_f_g_h_i_j"},
		{name: "keeps inner periods", input: "T.1.2", want: "T.1.2"},
		{name: "keeps case spaces and unicode", input: "Größe Tab", want: "Größe Tab"},
		{name: "only periods becomes empty", input: "...", want: ""},
		{name: "periods after replacement are trimmed", input: ".:.", want: "_"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fs.SanitizeName(tt.input)

			assert.Equal(t, tt.want, got)
			assert.False(t, strings.ContainsAny(got, `<>:"/\|?*`))
			assert.False(t, strings.HasPrefix(got, "."))
			assert.False(t, strings.HasSuffix(got, "."))
		})
	}
}

func sampleRecord() *tabldoc.TableRecord {
	return &tabldoc.TableRecord{
		Number:        "1",
		Name:          "MARA",
		Description:   "General Material Data",
		Category:      "TRANSP",
		DeliveryClass: "A",
		Fields: []tabldoc.FieldRecord{
			{
				Field:            "MANDT",
				Key:              true,
				DataElement:      tabldoc.Ref{Name: "MANDT", URL: "https://example.com/abap/dtel/mandt.html"},
				Domain:           tabldoc.Ref{Name: "MANDT", URL: "https://example.com/abap/doma/mandt.html"},
				DataType:         "CLNT",
				Length:           "3",
				Decimals:         "0",
				ShortDescription: "Client",
			},
			{
				Field:            "MATNR",
				Key:              true,
				DataElement:      tabldoc.Ref{Name: "MATNR"},
				Domain:           tabldoc.Ref{Name: "MATNR"},
				DataType:         "CHAR",
				Length:           "18",
				Decimals:         "0",
				ShortDescription: "Material Number <Größe & Co>",
			},
		},
	}
}

func TestWriter_WriteTable(t *testing.T) {
	t.Parallel()

	t.Run("creates directory and writes JSON file", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "sap_tables")
		w := fs.NewWriter(dir)

		err := w.WriteTable(context.Background(), sampleRecord())
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(dir, "MARA.json"))
		require.NoError(t, err)
	})

	t.Run("round trips record with field order preserved", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)
		rec := sampleRecord()

		require.NoError(t, w.WriteTable(context.Background(), rec))

		got, err := fs.ReadTable(w.Path(rec.Name))
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	})

	t.Run("writes indented JSON with expected keys", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)

		require.NoError(t, w.WriteTable(context.Background(), sampleRecord()))

		data, err := os.ReadFile(filepath.Join(dir, "MARA.json"))
		require.NoError(t, err)
		content := string(data)

		assert.True(t, strings.HasPrefix(content, "{\n  \"number\": \"1\",\n  \"name\": \"MARA\","))
		assert.Contains(t, content, `"delivery_class": "A"`)
		assert.Contains(t, content, `"data_element": {`)
		assert.Contains(t, content, `"short_description": "Material Number <Größe & Co>"`)
		assert.Contains(t, content, `"key": true`)
		assert.NotContains(t, content, "detail_url")
	})

	t.Run("uses sanitized file name", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)
		rec := sampleRecord()
		rec.Name = "/BIC/AZSALES"

		require.NoError(t, w.WriteTable(context.Background(), rec))

		_, err := os.Stat(filepath.Join(dir, "_BIC_AZSALES.json"))
		require.NoError(t, err)
		got, err := fs.ReadTable(filepath.Join(dir, "_BIC_AZSALES.json"))
		require.NoError(t, err)
		assert.Equal(t, "/BIC/AZSALES", got.Name)
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter(dir)
		rec := sampleRecord()
		require.NoError(t, w.WriteTable(context.Background(), rec))

		rec.Description = "Updated"
		rec.Fields = rec.Fields[:1]
		require.NoError(t, w.WriteTable(context.Background(), rec))

		got, err := fs.ReadTable(w.Path(rec.Name))
		require.NoError(t, err)
		assert.Equal(t, "Updated", got.Description)
		assert.Len(t, got.Fields, 1)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("rejects record without name", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		err := w.WriteTable(context.Background(), &tabldoc.TableRecord{})

		require.Error(t, err)
		assert.Equal(t, tabldoc.EINVALID, tabldoc.ErrorCode(err))
	})

	t.Run("rejects name that sanitizes to nothing", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter(t.TempDir())

		err := w.WriteTable(context.Background(), &tabldoc.TableRecord{Name: ".."})

		require.Error(t, err)
		assert.Equal(t, tabldoc.EINVALID, tabldoc.ErrorCode(err))
	})

	t.Run("reports filesystem failure when directory cannot be created", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		blocker := filepath.Join(base, "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		w := fs.NewWriter(filepath.Join(blocker, "out"))
		err := w.WriteTable(context.Background(), sampleRecord())

		require.Error(t, err)
		assert.Equal(t, tabldoc.EFILESYSTEM, tabldoc.ErrorCode(err))
	})
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	t.Run("writes empty field list as array", func(t *testing.T) {
		t.Parallel()

		data, err := fs.FormatTable(&tabldoc.TableRecord{Name: "EMPTY"})

		require.NoError(t, err)
		assert.Contains(t, string(data), `"fields": []`)
	})
}

func TestReadTable(t *testing.T) {
	t.Parallel()

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "X.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"X","extra":1}`), 0644))

		_, err := fs.ReadTable(path)

		require.Error(t, err)
		assert.Equal(t, tabldoc.EINVALID, tabldoc.ErrorCode(err))
	})

	t.Run("reports missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.ReadTable(filepath.Join(t.TempDir(), "missing.json"))

		require.Error(t, err)
		assert.Equal(t, tabldoc.EFILESYSTEM, tabldoc.ErrorCode(err))
	})
}
