package calculus

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var (
	_ fmt.Stringer             = (*Decimal)(nil)
	_ sql.Scanner              = (*Decimal)(nil)
	_ driver.Valuer            = (*Decimal)(nil)
	_ encoding.TextMarshaler   = (*Decimal)(nil)
	_ encoding.TextUnmarshaler = (*Decimal)(nil)
	_ json.Marshaler           = (*Decimal)(nil)
	_ json.Unmarshaler         = (*Decimal)(nil)
)

// MarshalJSON implements the json.Marshaler interface, emitting the
// canonical string quoted (matching the teacher's convention of always
// quoting the decimal string rather than risking float-precision loss).
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.str + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	if len(data) > 1 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	return d.UnmarshalText(data)
}

// MarshalText implements the encoding.TextMarshaler interface.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.str), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (d *Decimal) UnmarshalText(data []byte) error {
	parsed, err := ParseDecimal(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler with a small tagged
// layout:
//
//	[flags byte][width byte][integer 16 bytes][nominator 16 bytes]
//
// flags bit 0 is overflow, bit 1 is NaN; when either is set the remaining
// bytes are zeroed and ignored on unmarshal, matching the original's
// "overflow/neg flag byte, then payload" framing in spirit. Otherwise bit 2
// carries the integer part's sign and bit 3 the nominator's sign, and each
// component is stored big-endian as Hi then Lo.
func (d Decimal) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 2+16+16)
	var flags byte
	if d.IsOverflowed() {
		flags |= 1
	}
	if d.IsNotANumber() {
		flags |= 2
	}
	buf[1] = byte(Width())
	if flags != 0 {
		buf[0] = flags
		return buf, nil
	}
	if d.Integer.Sign.IsNegative() {
		flags |= 4
	}
	if d.Nominator.Sign.IsNegative() {
		flags |= 8
	}
	buf[0] = flags
	putU128(buf[2:18], d.Integer)
	putU128(buf[18:34], d.Nominator)
	return buf, nil
}

func putU128(b []byte, v U128) {
	binary.BigEndian.PutUint64(b[0:8], uint64(v.Hi))
	binary.BigEndian.PutUint64(b[8:16], uint64(v.Lo))
}

func getU128(b []byte, negative bool) U128 {
	sign := PositiveSign
	if negative {
		sign = NegativeSign
	}
	hi := Low64(binary.BigEndian.Uint64(b[0:8]))
	lo := Low64(binary.BigEndian.Uint64(b[8:16]))
	return U128{Lo: lo, Hi: hi, Sign: sign}
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *Decimal) UnmarshalBinary(data []byte) error {
	if len(data) != 34 {
		return ErrInvalidBinaryData
	}
	flags := data[0]
	switch {
	case flags&2 != 0:
		*d = NaNDecimal()
		return nil
	case flags&1 != 0:
		*d = InfDecimal()
		return nil
	}
	integer := getU128(data[2:18], flags&4 != 0)
	nominator := getU128(data[18:34], flags&8 != 0)
	*d = NewDecimalFromParts(integer, nominator)
	return nil
}

// Scan implements sql.Scanner, accepting the same source kinds the
// teacher's Scan does.
func (d *Decimal) Scan(src any) error {
	var err error
	switch v := src.(type) {
	case []byte:
		*d, err = ParseDecimal(string(v))
	case string:
		*d, err = ParseDecimal(v)
	case nil:
		err = fmt.Errorf("can't scan nil to Decimal")
	default:
		err = fmt.Errorf("can't scan %T to Decimal: %T is not supported", src, src)
	}
	return err
}

// Value implements driver.Valuer.
func (d Decimal) Value() (driver.Value, error) {
	return d.str, nil
}

// NullDecimal is a nullable Decimal, matching the teacher's NullDecimal.
type NullDecimal struct {
	Decimal Decimal
	Valid   bool
}

// Scan implements sql.Scanner for NullDecimal.
func (n *NullDecimal) Scan(src any) error {
	if src == nil {
		n.Decimal, n.Valid = Decimal{}, false
		return nil
	}
	var err error
	switch v := src.(type) {
	case []byte:
		n.Decimal, err = ParseDecimal(string(v))
	case string:
		n.Decimal, err = ParseDecimal(v)
	default:
		err = fmt.Errorf("can't scan %T to Decimal: %T is not supported", src, src)
	}
	n.Valid = err == nil
	return err
}

// Value implements driver.Valuer for NullDecimal.
func (n NullDecimal) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Decimal.str, nil
}

// MarshalDynamoDBAttributeValue encodes Decimal as a DynamoDB Number
// attribute carrying the canonical decimal string, so values round-trip
// exactly instead of going through a lossy float conversion.
func (d Decimal) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: d.str}, nil
}

// UnmarshalDynamoDBAttributeValue decodes a DynamoDB Number or String
// attribute into Decimal; a NULL attribute yields the zero-value Decimal{},
// and any other attribute kind is rejected.
func (d *Decimal) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		parsed, err := ParseDecimal(v.Value)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case *types.AttributeValueMemberS:
		parsed, err := ParseDecimal(v.Value)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case *types.AttributeValueMemberNULL:
		*d = Decimal{}
		return nil
	default:
		return ErrUnsupportedAttributeValue
	}
}
