package report

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Labels is the ordered table of class names, addressed by class index.
type Labels []string

// ParseLabels parses a comma separated list.
func ParseLabels(s string) Labels {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	items := strings.Split(s, ",")
	labels := make(Labels, len(items))
	for n, item := range items {
		labels[n] = strings.TrimSpace(item)
	}
	return labels
}

// ReadLabels reads one label per line. Blank lines and lines starting
// with # are skipped.
func ReadLabels(r io.Reader) (Labels, error) {
	var labels Labels
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		labels = append(labels, line)
	}
	return labels, scanner.Err()
}

// ReadLabelsFile reads labels from a file.
func ReadLabelsFile(path string) (Labels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "labels")
	}
	defer f.Close()
	labels, err := ReadLabels(f)
	if err != nil {
		return nil, errors.Wrapf(err, "labels %s", path)
	}
	return labels, nil
}

// Label returns the name of class i.
func (l Labels) Label(i int) (string, bool) {
	if i < 0 || i >= len(l) || l[i] == "" {
		return "", false
	}
	return l[i], true
}
