package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeJobHistory_Empty(t *testing.T) {
	assert.Nil(t, EncodeJobHistory(nil))
	assert.Nil(t, EncodeJobHistory([]JobHistoryElement{}))
}

func TestEncodeJobHistory_Format(t *testing.T) {
	encoded := EncodeJobHistory([]JobHistoryElement{
		DummyJobHistoryElement(),
		{Employer: "TUM", Position: "Tutor", DateFrom: "01.04.2022", DateTo: "30.09.2022"},
	})
	require.NotNil(t, encoded)
	assert.Equal(t, "Google:SWE Intern:15.01.2023:31.03.2023,TUM:Tutor:01.04.2022:30.09.2022", *encoded)
}

func TestJobHistory_RoundTrip(t *testing.T) {
	cases := [][]JobHistoryElement{
		{DummyJobHistoryElement()},
		{
			{Employer: "A", Position: "B", DateFrom: "C", DateTo: "D"},
			{Employer: "E", Position: "F", DateFrom: "G", DateTo: "H"},
			{Employer: "", Position: "", DateFrom: "", DateTo: ""},
		},
	}
	for _, entries := range cases {
		encoded := EncodeJobHistory(entries)
		require.NotNil(t, encoded)
		assert.Equal(t, entries, DecodeJobHistory(*encoded))
	}
}

func TestDecodeJobHistory_DropsMalformedEntries(t *testing.T) {
	decoded := DecodeJobHistory("A:B:C:D,too:few,E:F:G:H,1:2:3:4:5")
	assert.Equal(t, []JobHistoryElement{
		{Employer: "A", Position: "B", DateFrom: "C", DateTo: "D"},
		{Employer: "E", Position: "F", DateFrom: "G", DateTo: "H"},
	}, decoded)
}

func TestDecodeJobHistory_Empty(t *testing.T) {
	decoded := DecodeJobHistory("")
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestJobHistory_SeparatorsInFieldsAreLost(t *testing.T) {
	entries := []JobHistoryElement{{Employer: "Acme, Inc", Position: "Dev", DateFrom: "1", DateTo: "2"}}
	encoded := EncodeJobHistory(entries)
	require.NotNil(t, encoded)
	assert.NotEqual(t, entries, DecodeJobHistory(*encoded))
}
