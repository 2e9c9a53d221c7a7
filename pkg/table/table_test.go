package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_NullsAndLeadingSpace(t *testing.T) {
	input := "First Name, Last Name,Company\n" +
		"Alice, Smith,Acme\n" +
		"Bob,Jones,\n" +
		"Carol\n"

	tbl, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"First Name", "Last Name", "Company"}, tbl.Columns())
	require.Equal(t, 3, tbl.Len())

	last, ok := tbl.Value(0, "Last Name")
	require.True(t, ok)
	assert.Equal(t, Str("Smith"), last)

	company, _ := tbl.Value(1, "Company")
	assert.False(t, company.Valid, "empty field should be null")

	padded, _ := tbl.Value(2, "Last Name")
	assert.False(t, padded.Valid, "short row should be padded with null")
}

func TestReadCSV_StripsBOM(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("\ufeffname,company\nA,B\n"))
	require.NoError(t, err)
	assert.True(t, tbl.Has("name"))
}

func TestReadCSV_Windows1252(t *testing.T) {
	input := "name,company\nJos\xe9 Ruiz,Acme\nJos\xe8 Ruiz,Caf\xe9 \x80 Co\n"

	tbl, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	first, _ := tbl.Value(0, "name")
	second, _ := tbl.Value(1, "name")
	assert.Equal(t, "José Ruiz", first.Value)
	assert.Equal(t, "Josè Ruiz", second.Value)

	company, _ := tbl.Value(1, "company")
	assert.Equal(t, "Café € Co", company.Value)
}

func TestReadCSV_UTF8Untouched(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("name\nJosé Ruiz\nï¿½\n"))
	require.NoError(t, err)

	name, _ := tbl.Value(0, "name")
	assert.Equal(t, "José Ruiz", name.Value)
}

func TestReadCSV_UndefinedWindows1252Byte(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("name\nAnn\x81Lee\n"))
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoHeader)

	tbl, err := ReadCSV(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.True(t, tbl.Empty())
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
}

func TestAppend_Arity(t *testing.T) {
	tbl := New("a", "b")
	assert.ErrorIs(t, tbl.Append(Str("x")), ErrArity)
	assert.NoError(t, tbl.AppendStrings("x", "y"))
}

func TestDedup_PreservesFirstOccurrence(t *testing.T) {
	tbl := New("name", "company")
	require.NoError(t, tbl.AppendStrings("Alice", "Acme"))
	require.NoError(t, tbl.AppendStrings("Bob", "Acme"))
	require.NoError(t, tbl.AppendStrings("Alice", "Acme"))
	require.NoError(t, tbl.Append(Str("Carol"), Null()))
	require.NoError(t, tbl.Append(Str("Carol"), Null()))
	require.NoError(t, tbl.Append(Str("Carol"), Str("")))

	out := tbl.Dedup()
	require.Equal(t, 4, out.Len())

	var names []string
	for i := 0; i < out.Len(); i++ {
		c, _ := out.Value(i, "name")
		names = append(names, c.Value)
	}
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Carol"}, names)

	again := out.Dedup()
	assert.Equal(t, out.Len(), again.Len(), "dedup must be idempotent")
}

func TestDedupExcept_IgnoresNamedColumns(t *testing.T) {
	tbl := New("name", "owner")
	require.NoError(t, tbl.AppendStrings("Bob", "alice"))
	require.NoError(t, tbl.AppendStrings("Bob", "bob"))
	require.NoError(t, tbl.AppendStrings("Carol", "bob"))

	out := tbl.DedupExcept("owner", "unknown")
	require.Equal(t, 2, out.Len())
	owner, _ := out.Value(0, "owner")
	assert.Equal(t, "alice", owner.Value, "first row of a key is kept")
}

func TestSelectDropRename(t *testing.T) {
	tbl := New("First Name", "Last Name", "Email")
	require.NoError(t, tbl.AppendStrings("Alice", "Smith", "a@example.com"))

	sel := tbl.Select("Email", "Missing", "First Name")
	assert.Equal(t, []string{"Email", "First Name"}, sel.Columns())
	assert.Equal(t, "a@example.com", sel.Row(0)[0].Value)

	dropped := tbl.Drop("Email")
	assert.Equal(t, []string{"First Name", "Last Name"}, dropped.Columns())

	renamed := tbl.Rename(func(c string) string {
		return strings.ToLower(strings.ReplaceAll(c, " ", "_"))
	})
	assert.Equal(t, []string{"first_name", "last_name", "email"}, renamed.Columns())
	v, _ := renamed.Value(0, "last_name")
	assert.Equal(t, "Smith", v.Value)
}

func TestRename_Collision(t *testing.T) {
	tbl := New("Company", "company ")
	require.NoError(t, tbl.AppendStrings("first", "second"))

	renamed := tbl.Rename(func(c string) string { return strings.ToLower(strings.TrimSpace(c)) })
	assert.Equal(t, []string{"company"}, renamed.Columns())
	v, _ := renamed.Value(0, "company")
	assert.Equal(t, "first", v.Value)
}

func TestSetColumnAndMapColumn(t *testing.T) {
	tbl := New("first", "last")
	require.NoError(t, tbl.AppendStrings("Alice", "Smith"))
	require.NoError(t, tbl.Append(Str("Bob"), Null()))

	tbl.SetColumn("name", func(_ int, r Row) Cell {
		if !r[0].Valid || !r[1].Valid {
			return Null()
		}
		return Str(r[0].Value + " " + r[1].Value)
	})
	assert.Equal(t, []string{"first", "last", "name"}, tbl.Columns())
	v, _ := tbl.Value(0, "name")
	assert.Equal(t, "Alice Smith", v.Value)
	v, _ = tbl.Value(1, "name")
	assert.False(t, v.Valid)

	tbl.MapColumn("first", func(s string) Cell { return Str(strings.ToUpper(s)) })
	v, _ = tbl.Value(1, "first")
	assert.Equal(t, "BOB", v.Value)

	assert.Equal(t, []string{"last", "name"}, tbl.ColumnsWithNulls())
}

func TestConcat_ColumnUnion(t *testing.T) {
	a := New("name", "company")
	require.NoError(t, a.AppendStrings("Alice", "Acme"))
	b := New("name", "email")
	require.NoError(t, b.AppendStrings("Bob", "b@example.com"))

	out := Concat(a, nil, b)
	assert.Equal(t, []string{"name", "company", "email"}, out.Columns())
	require.Equal(t, 2, out.Len())

	email, _ := out.Value(0, "email")
	assert.False(t, email.Valid)
	company, _ := out.Value(1, "company")
	assert.False(t, company.Valid)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl := New("name", "company")
	require.NoError(t, tbl.AppendStrings("Smith, Alice", "Acme"))
	require.NoError(t, tbl.Append(Str("Bob"), Null()))

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))
	assert.Equal(t, "name,company\n\"Smith, Alice\",Acme\nBob,\n", buf.String())

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, tbl.Len(), back.Len())
	v, _ := back.Value(0, "name")
	assert.Equal(t, "Smith, Alice", v.Value)
}
