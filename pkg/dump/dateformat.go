package dump

import (
	"strings"
	"time"

	"github.com/esfalsa/pallets/pkg/errors"
)

// DefaultDateFormat is the strftime format dates are accepted in by default.
const DefaultDateFormat = "%Y-%m-%d"

var strftimeDirectives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'e': "_2",
	'b': "Jan",
	'h': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'j': "002",
	'F': "2006-01-02",
	'D': "01/02/06",
	'%': "%",
}

// Layout converts a strftime format into a Go time layout. A format without
// any % directive is taken to already be a Go layout.
func Layout(format string) (string, error) {
	if !strings.Contains(format, "%") {
		if format == "" {
			return DateLayout, nil
		}
		return format, nil
	}

	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(format) {
			return "", errors.Wrapf(errors.ErrInvalidDate, "date format %q ends with a bare %%", format)
		}
		i++
		layout, ok := strftimeDirectives[format[i]]
		if !ok {
			return "", errors.Wrapf(errors.ErrInvalidDate, "date format %q: unsupported directive %%%c", format, format[i])
		}
		b.WriteString(layout)
	}
	return b.String(), nil
}

// ParseDateFormat parses value using a strftime (or Go layout) format and
// returns the calendar date at midnight UTC.
func ParseDateFormat(value, format string) (time.Time, error) {
	layout, err := Layout(format)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrInvalidDate, "%q does not match format %q: %v", value, format, err)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}
