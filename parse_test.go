package laborcrawl_test

import (
	"testing"

	"github.com/hylin/laborcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord_strict_JSON_object(t *testing.T) {
	t.Parallel()

	rec, err := laborcrawl.ParseRecord(`{"job_title":"engineer","monthly_salary":50000,"currency":"TWD"}`)

	require.NoError(t, err)
	require.NotNil(t, rec.JobTitle)
	require.NotNil(t, rec.MonthlySalary)
	assert.Equal(t, "engineer", *rec.JobTitle)
	assert.Equal(t, 50000.0, *rec.MonthlySalary)
	assert.Equal(t, "TWD", rec.Currency)
}

func TestParseRecord_extracts_JSON_span_from_markdown_fencing(t *testing.T) {
	t.Parallel()

	raw := "Here is the result:\n```json\n{\"job_title\":null,\"monthly_salary\":null}\n```"

	rec, err := laborcrawl.ParseRecord(raw)

	require.NoError(t, err)
	assert.Nil(t, rec.JobTitle)
	assert.Nil(t, rec.MonthlySalary)
	assert.Equal(t, laborcrawl.DefaultCurrency, rec.Currency, "missing currency defaults to TWD")
}

func TestParseRecord_rejects_non_JSON(t *testing.T) {
	t.Parallel()

	rec, err := laborcrawl.ParseRecord("not json at all")

	assert.Nil(t, rec)
	assert.Equal(t, laborcrawl.EUNPROCESSABLE, laborcrawl.ErrorCode(err))
}

func TestParseRecord_rejects_empty_input(t *testing.T) {
	t.Parallel()

	rec, err := laborcrawl.ParseRecord("  \n ")

	assert.Nil(t, rec)
	assert.Equal(t, laborcrawl.EUNPROCESSABLE, laborcrawl.ErrorCode(err))
}

func TestParseRecord_takes_first_element_of_array(t *testing.T) {
	t.Parallel()

	rec, err := laborcrawl.ParseRecord(`[{"job_title":"clerk","monthly_salary":30000}]`)

	require.NoError(t, err)
	require.NotNil(t, rec.JobTitle)
	require.NotNil(t, rec.MonthlySalary)
	assert.Equal(t, "clerk", *rec.JobTitle)
	assert.Equal(t, 30000.0, *rec.MonthlySalary)
}

func TestParseRecord_rejects_empty_array(t *testing.T) {
	t.Parallel()

	rec, err := laborcrawl.ParseRecord(`[]`)

	assert.Nil(t, rec)
	assert.Equal(t, laborcrawl.EUNPROCESSABLE, laborcrawl.ErrorCode(err))
}

func TestParseRecord_error_carries_truncated_snippet(t *testing.T) {
	t.Parallel()

	long := make([]byte, 0, 1000)
	for range 1000 {
		long = append(long, 'x')
	}

	_, err := laborcrawl.ParseRecord(string(long))

	require.Error(t, err)
	assert.Less(t, len(laborcrawl.ErrorMessage(err)), 300, "raw output must be truncated in the error")
}

func TestParseRecord_CJK_fields(t *testing.T) {
	t.Parallel()

	rec, err := laborcrawl.ParseRecord(`{"job_title":"工程師","monthly_salary":50000,"currency":"TWD"}`)

	require.NoError(t, err)
	require.NotNil(t, rec.JobTitle)
	assert.Equal(t, "工程師", *rec.JobTitle)
}

func TestExtractedRecord_tolerates_comma_grouped_salary_strings(t *testing.T) {
	t.Parallel()

	rec, err := laborcrawl.ParseRecord(`{"job_title":"作業員","monthly_salary":"NT$28,000"}`)

	require.NoError(t, err)
	require.NotNil(t, rec.MonthlySalary)
	assert.Equal(t, 28000.0, *rec.MonthlySalary)
}

func TestExtractedRecord_null_salary_decodes_as_nil_not_zero(t *testing.T) {
	t.Parallel()

	rec, err := laborcrawl.ParseRecord(`{"job_title":"工程師","monthly_salary":null}`)

	require.NoError(t, err)
	assert.Nil(t, rec.MonthlySalary, "explicit null must not become a zero salary")
	require.NotNil(t, rec.JobTitle)
	assert.Equal(t, "工程師", *rec.JobTitle)
}

func TestExtractedRecord_unparsable_salary_decodes_as_nil(t *testing.T) {
	t.Parallel()

	rec, err := laborcrawl.ParseRecord(`{"job_title":"作業員","monthly_salary":"視出勤而定"}`)

	require.NoError(t, err)
	assert.Nil(t, rec.MonthlySalary, "non-numeric salary text is treated as not found")
	require.NotNil(t, rec.JobTitle)
	assert.Equal(t, "作業員", *rec.JobTitle)
}
