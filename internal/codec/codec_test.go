package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_NumberAndString(t *testing.T) {
	var viaNumber, viaString FlexInt
	require.NoError(t, json.Unmarshal([]byte(`42`), &viaNumber))
	require.NoError(t, json.Unmarshal([]byte(`"42"`), &viaString))
	assert.Equal(t, viaNumber, viaString)
	assert.Equal(t, int64(42), viaNumber.Int())
}

func TestFlexInt_InvalidString(t *testing.T) {
	var f FlexInt
	assert.Error(t, json.Unmarshal([]byte(`"not-a-number"`), &f))
}

func TestFlexBool_Forms(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`"1"`, true},
		{`"0"`, false},
	}
	for _, c := range cases {
		var f FlexBool
		require.NoError(t, json.Unmarshal([]byte(c.in), &f), c.in)
		assert.Equal(t, c.want, f.Bool(), c.in)
	}
}

func TestFlexTimestamp_DateWidensToIntervalEndpoints(t *testing.T) {
	var dateOnly, dateTime FlexTimestamp
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-01"`), &dateOnly))
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-01 00:00:00"`), &dateTime))

	assert.True(t, dateOnly.AsStart().Equal(dateTime.AsStart()))

	require.NoError(t, json.Unmarshal([]byte(`"2024-01-01 23:59:59"`), &dateTime))
	assert.True(t, dateOnly.AsEnd().Equal(dateTime.AsStart()))
}

func TestDateOnly_RejectsDateTime(t *testing.T) {
	var d DateOnly
	assert.Error(t, json.Unmarshal([]byte(`"2024-01-01 10:00:00"`), &d))
	assert.NoError(t, json.Unmarshal([]byte(`"2024-01-01"`), &d))
}

func TestDecode_OpenRequest(t *testing.T) {
	req, err := Decode([]byte(`{"open":{"baza":"stud","login":"stud","password":"p"}}`))
	require.NoError(t, err)
	open, ok := req.(OpenRequest)
	require.True(t, ok)
	assert.Equal(t, "stud", open.Baza)
	assert.Equal(t, "open", open.Kind())
}

func TestDecode_UnknownKey(t *testing.T) {
	_, err := Decode([]byte(`{"frobnicate":{}}`))
	assert.Error(t, err)
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecode_MultipleTopLevelKeys(t *testing.T) {
	_, err := Decode([]byte(`{"open":{},"event":{}}`))
	assert.Error(t, err)
}

func TestDecode_OrganizerSecret(t *testing.T) {
	old := OrganizerSecret
	defer func() { OrganizerSecret = old }()
	OrganizerSecret = "d8578edf8458ce06fbc5bb76a58c5ca4"

	_, err := Decode([]byte(`{"organizer":{"secret":"wrong","newlogin":"org","newpassword":"pw"}}`))
	assert.ErrorIs(t, err, ErrInvalidSecret{})

	req, err := Decode([]byte(`{"organizer":{"secret":"d8578edf8458ce06fbc5bb76a58c5ca4","newlogin":"org","newpassword":"pw"}}`))
	require.NoError(t, err)
	assert.Equal(t, "organizer", req.Kind())
}

func TestEncode_Envelopes(t *testing.T) {
	assert.JSONEq(t, `{"status":"OK"}`, string(EncodeOK()))
	assert.JSONEq(t, `{"status":"ERROR"}`, string(EncodeError()))
	assert.JSONEq(t, `{"status":"NOT IMPLEMENTED"}`, string(EncodeNotImplemented()))
	assert.JSONEq(t, `{"status":"OK","data":[]}`, string(EncodeOKData([]TalkRow{})))
}

func TestEncode_RowFieldOrder(t *testing.T) {
	row := UserPlanRow{Login: "a", Talk: "t1", Title: "Title", Room: "R1"}
	b, err := json.Marshal(row)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, field := range []string{"login", "talk", "start_timestamp", "title", "room"} {
		_, ok := raw[field]
		assert.True(t, ok, "missing field %q", field)
	}
}
