package store

import (
	"bufio"
	"bytes"
	"strings"
)

// CommitRecord is a commit as git stores it. Author and Committer are raw
// identity lines ("Name <email> 1700000000 +0000"); Message is verbatim,
// including its trailing newline.
type CommitRecord struct {
	SHA       string
	Tree      string
	Parents   []string
	Author    string
	Committer string
	Message   string
}

// TagRecord is an annotated tag object.
type TagRecord struct {
	SHA     string
	Object  string
	Type    string
	Name    string
	Tagger  string
	Message string
}

// splitObject separates the header block of a commit or tag object from its
// message. Continuation lines (leading space, used by gpgsig and mergetag)
// are dropped.
func splitObject(body []byte) ([][2]string, string) {
	headerBlock, message, _ := bytes.Cut(body, []byte("\n\n"))

	var headers [][2]string
	for line := range strings.SplitSeq(string(headerBlock), "\n") {
		if line == "" || strings.HasPrefix(line, " ") {
			continue
		}
		key, value, _ := strings.Cut(line, " ")
		headers = append(headers, [2]string{key, value})
	}
	return headers, string(message)
}

func parseCommit(body []byte) *CommitRecord {
	headers, message := splitObject(body)
	record := &CommitRecord{Parents: []string{}, Message: message}
	for _, h := range headers {
		switch h[0] {
		case "tree":
			record.Tree = h[1]
		case "parent":
			record.Parents = append(record.Parents, h[1])
		case "author":
			record.Author = h[1]
		case "committer":
			record.Committer = h[1]
		}
	}
	return record
}

func parseTag(body []byte) *TagRecord {
	headers, message := splitObject(body)
	record := &TagRecord{Message: message}
	for _, h := range headers {
		switch h[0] {
		case "object":
			record.Object = h[1]
		case "type":
			record.Type = h[1]
		case "tag":
			record.Name = h[1]
		case "tagger":
			record.Tagger = h[1]
		}
	}
	return record
}

// parseRawLog parses `git log --pretty=raw` output. Message lines are
// indented by four spaces there; the indentation is removed and the message
// is normalised to end with exactly one newline, as in the object itself.
func parseRawLog(out []byte) []*CommitRecord {
	var (
		records   []*CommitRecord
		current   *CommitRecord
		inMessage bool
		message   []string
	)

	flush := func() {
		if current == nil {
			return
		}
		for len(message) > 0 && strings.TrimSpace(message[len(message)-1]) == "" {
			message = message[:len(message)-1]
		}
		if len(message) > 0 {
			current.Message = strings.Join(message, "\n") + "\n"
		}
		records = append(records, current)
		current, inMessage, message = nil, false, nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if rest, ok := strings.CutPrefix(line, "commit "); ok {
			flush()
			sha, _, _ := strings.Cut(strings.TrimSpace(rest), " ")
			current = &CommitRecord{SHA: sha, Parents: []string{}}
			continue
		}
		if current == nil {
			continue
		}
		if inMessage {
			message = append(message, strings.TrimPrefix(line, "    "))
			continue
		}
		if line == "" {
			inMessage = true
			continue
		}
		key, value, _ := strings.Cut(line, " ")
		switch key {
		case "tree":
			current.Tree = value
		case "parent":
			current.Parents = append(current.Parents, value)
		case "author":
			current.Author = value
		case "committer":
			current.Committer = value
		}
	}
	flush()
	return records
}
