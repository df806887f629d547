package calculus

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
)

func TestDecimalJSONRoundTrip(t *testing.T) {
	d := mustParseT(t, "123,456")
	data, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"123,456"`, string(data))

	var got Decimal
	require.NoError(t, json.Unmarshal(data, &got))
	require.True(t, got.Equal(d))
}

func TestDecimalTextRoundTrip(t *testing.T) {
	d := mustParseT(t, "-42,500")
	text, err := d.MarshalText()
	require.NoError(t, err)

	var got Decimal
	require.NoError(t, got.UnmarshalText(text))
	require.True(t, got.Equal(d))
}

func TestDecimalBinaryRoundTrip(t *testing.T) {
	testcases := []Decimal{
		mustParseT(t, "0"),
		mustParseT(t, "123,456"),
		mustParseT(t, "-123,456"),
		InfDecimal(),
		NaNDecimal(),
	}
	for _, d := range testcases {
		data, err := d.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, 34)

		var got Decimal
		require.NoError(t, got.UnmarshalBinary(data))

		switch {
		case d.IsNotANumber():
			require.True(t, got.IsNotANumber())
		case d.IsOverflowed():
			require.True(t, got.IsOverflowed())
		default:
			require.True(t, got.Equal(d), "round-tripped %v != original %v", got, d)
		}
	}
}

func TestDecimalBinaryRejectsWrongLength(t *testing.T) {
	var d Decimal
	err := d.UnmarshalBinary([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrInvalidBinaryData)
}

func TestDecimalSQLValuer(t *testing.T) {
	d := mustParseT(t, "7,250")
	v, err := d.Value()
	require.NoError(t, err)
	require.Equal(t, "7,250", v)

	var got Decimal
	require.NoError(t, got.Scan("7,250"))
	require.True(t, got.Equal(d))

	require.NoError(t, got.Scan([]byte("7,250")))
	require.True(t, got.Equal(d))

	require.Error(t, got.Scan(42))
}

func TestNullDecimal(t *testing.T) {
	var n NullDecimal
	require.NoError(t, n.Scan(nil))
	require.False(t, n.Valid)
	v, err := n.Value()
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, n.Scan("3,140"))
	require.True(t, n.Valid)
	v, err = n.Value()
	require.NoError(t, err)
	require.Equal(t, "3,140", v)
}

func TestDecimalDynamoDBAttributeValue(t *testing.T) {
	d := mustParseT(t, "9,990")
	av, err := d.MarshalDynamoDBAttributeValue()
	require.NoError(t, err)
	n, ok := av.(*types.AttributeValueMemberN)
	require.True(t, ok)
	require.Equal(t, "9,990", n.Value)

	var got Decimal
	require.NoError(t, got.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberN{Value: "9,990"}))
	require.True(t, got.Equal(d))

	require.NoError(t, got.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberS{Value: "9,990"}))
	require.True(t, got.Equal(d))

	err = got.UnmarshalDynamoDBAttributeValue(&types.AttributeValueMemberBOOL{Value: true})
	require.ErrorIs(t, err, ErrUnsupportedAttributeValue)
}

func mustParseT(t *testing.T, s string) Decimal {
	t.Helper()
	d, err := ParseDecimal(s)
	require.NoError(t, err)
	return d
}
