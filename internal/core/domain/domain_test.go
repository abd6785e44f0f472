package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnixTime_UnmarshalNumber(t *testing.T) {
	var ts UnixTime
	require.NoError(t, json.Unmarshal([]byte(`1700000000`), &ts))
	assert.Equal(t, UnixTime(1700000000), ts)
}

func TestUnixTime_UnmarshalFractionalNumber(t *testing.T) {
	var ts UnixTime
	require.NoError(t, json.Unmarshal([]byte(`1700000000.75`), &ts))
	assert.Equal(t, UnixTime(1700000000), ts)
}

func TestUnixTime_UnmarshalISOString(t *testing.T) {
	var ts UnixTime
	require.NoError(t, json.Unmarshal([]byte(`"2023-11-14T22:13:20.000Z"`), &ts))
	assert.Equal(t, UnixTime(1700000000), ts)
}

// Both upstream encodings of the same instant must land on the same value.
func TestUnixTime_EncodingsAgree(t *testing.T) {
	var fromNumber, fromString UnixTime
	require.NoError(t, json.Unmarshal([]byte(`1700000000`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`"2023-11-14T22:13:20.000Z"`), &fromString))
	assert.Equal(t, fromNumber, fromString)
}

func TestUnixTime_UnmarshalNull(t *testing.T) {
	ts := UnixTime(42)
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.Equal(t, UnixTime(0), ts)
}

func TestUnixTime_UnmarshalGarbage(t *testing.T) {
	var ts UnixTime
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestUnixTime_Marshal(t *testing.T) {
	out, err := json.Marshal(UnixTime(1700000000))
	require.NoError(t, err)
	assert.Equal(t, "1700000000", string(out))
}

func TestUnixTime_Time(t *testing.T) {
	ts := UnixTime(1700000000)
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), ts.Time())
}

func TestLedgerPayment_IsOutgoing(t *testing.T) {
	assert.True(t, LedgerPayment{Amount: -1}.IsOutgoing())
	assert.False(t, LedgerPayment{Amount: 1}.IsOutgoing())
	assert.False(t, LedgerPayment{Amount: 0}.IsOutgoing())
}

func TestZapEvent_AmountMsat(t *testing.T) {
	assert.Equal(t, int64(21000), ZapEvent{Payment: LedgerPayment{Amount: -21000}}.AmountMsat())
	assert.Equal(t, int64(21000), ZapEvent{Payment: LedgerPayment{Amount: 21000}}.AmountMsat())
}

func TestZapEvent_Anonymous(t *testing.T) {
	e := ZapEvent{Payment: LedgerPayment{Memo: AnonymousMemoPrefix + "gg"}}
	assert.True(t, e.IsAnonymous())
	assert.Equal(t, "gg", e.DisplayMemo())

	plain := ZapEvent{Payment: LedgerPayment{Memo: "gg"}}
	assert.False(t, plain.IsAnonymous())
	assert.Equal(t, "gg", plain.DisplayMemo())
}

func TestLedgerPayment_UnmarshalExtra(t *testing.T) {
	raw := `{
		"checking_id": "internal_abc",
		"wallet_id": "w1",
		"amount": -21000,
		"memo": "gg",
		"time": "2023-11-14T22:13:20.000Z",
		"extra": {"from": {"user": "u-alice"}, "to": {"user": "u-bob"}, "tag": "zap"}
	}`

	var p LedgerPayment
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, "internal_abc", p.CheckingID)
	assert.Equal(t, UnixTime(1700000000), p.Time)
	require.NotNil(t, p.Extra)
	require.NotNil(t, p.Extra.From)
	assert.Equal(t, "u-alice", p.Extra.From.User)
	assert.Equal(t, "u-bob", p.Extra.To.User)
}
