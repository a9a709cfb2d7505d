package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// HexAddress is an I2C device address. The configuration file may
// spell it as a plain integer or as a hex string ("0x40").
type HexAddress uint16

func (a HexAddress) String() string {
	return fmt.Sprintf("0x%02X", uint16(a))
}

// hexAddressHookFunc returns a mapstructure decode hook that parses
// HexAddress values from integers or hex strings.
func hexAddressHookFunc() mapstructure.DecodeHookFuncType {
	hexAddressType := reflect.TypeOf(HexAddress(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != hexAddressType {
			return data, nil
		}

		switch v := data.(type) {
		case int:
			return HexAddress(v), nil
		case int64:
			return HexAddress(v), nil
		case float64:
			return HexAddress(v), nil
		case string:
			s := strings.TrimPrefix(strings.ToLower(v), "0x")
			value, err := strconv.ParseUint(s, 16, 16)
			if err != nil {
				return nil, fmt.Errorf("cannot parse %q as i2c address: %w", v, err)
			}
			return HexAddress(value), nil
		default:
			return data, nil
		}
	}
}
