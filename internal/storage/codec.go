/**
* Name: 			codec.go
* Description: 		로컬 제출 로그의 한 줄 인코딩/디코딩
* Workflow: 		필드 이스케이프 → TAB 결합 → 개행 추가, 그 역과정
 */

package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ClassroomAnswerLog/internal/models"
)

// Line format
//
//	<timestamp>\t<student_name>\t<prompt_id>\t<answer_text>\n
//
// Each field is escaped before joining:
//
//	\    -> \\
//	TAB  -> \t
//	LF   -> \n
//	CR   -> \r
//
// so a field never holds a raw TAB or line break and every record is
// exactly one line. Any other byte, including non-ASCII text, is written as is.
// The timestamp is UTC with no zone suffix.
const (
	fieldSeparator = '\t'
	fieldCount     = 4
)

var ErrMalformedLine = errors.New("malformed ledger line")

var fieldEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\t", `\t`,
	"\n", `\n`,
	"\r", `\r`,
)

func escapeField(s string) string {
	return fieldEscaper.Replace(s)
}

func unescapeField(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("%w: dangling escape", ErrMalformedLine)
		}
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			return "", fmt.Errorf("%w: unknown escape \\%c", ErrMalformedLine, s[i])
		}
	}
	return b.String(), nil
}

// EncodeLine renders rec as a single newline-terminated ledger line.
func EncodeLine(rec models.SubmissionRecord) []byte {
	fields := rec.Fields()
	for i, f := range fields {
		fields[i] = escapeField(f)
	}
	line := strings.Join(fields, string(fieldSeparator))
	return []byte(line + "\n")
}

// DecodeLine parses one ledger line, with or without its trailing newline.
func DecodeLine(line string) (models.SubmissionRecord, error) {
	line = strings.TrimSuffix(line, "\n")

	parts := strings.Split(line, string(fieldSeparator))
	if len(parts) != fieldCount {
		return models.SubmissionRecord{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedLine, fieldCount, len(parts))
	}

	fields := make([]string, fieldCount)
	for i, p := range parts {
		v, err := unescapeField(p)
		if err != nil {
			return models.SubmissionRecord{}, err
		}
		fields[i] = v
	}

	ts, err := time.ParseInLocation(models.TimestampLayout, fields[0], time.UTC)
	if err != nil {
		return models.SubmissionRecord{}, fmt.Errorf("%w: bad timestamp %q", ErrMalformedLine, fields[0])
	}

	return models.NewRecordAt(ts, fields[1], fields[2], fields[3]), nil
}
