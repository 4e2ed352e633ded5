package object

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Author is the identity and timestamp on a commit or tag.
type Author struct {
	Name  string
	Email string
	Date  time.Time
}

var identityRegex = regexp.MustCompile(`^(.*) <(.*)> (\d+) ([+-])(\d{2})(\d{2})$`)

// ParseAuthor parses an identity line as git writes it:
//
//	A U Thor <author@example.com> 1700000000 +0100
//
// The date keeps the line's UTC offset. A line that does not have this form
// yields an Author with only Name set, to the whole line.
func ParseAuthor(line string) *Author {
	m := identityRegex.FindStringSubmatch(line)
	if m == nil {
		return &Author{Name: line}
	}
	secs, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return &Author{Name: line}
	}
	hours, _ := strconv.Atoi(m[5])
	minutes, _ := strconv.Atoi(m[6])
	offset := hours*3600 + minutes*60
	if m[4] == "-" {
		offset = -offset
	}
	return &Author{
		Name:  m[1],
		Email: m[2],
		Date:  time.Unix(secs, 0).In(time.FixedZone("", offset)),
	}
}

// String formats the author back into git's identity line.
func (a *Author) String() string {
	if a.Date.IsZero() && a.Email == "" {
		return a.Name
	}
	return fmt.Sprintf("%s <%s> %d %s", a.Name, a.Email, a.Date.Unix(), a.Date.Format("-0700"))
}
