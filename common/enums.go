// Package common keeps enumerations shared between configuration and
// conversion code, so that neither has to import the other.
package common

import (
	"fmt"
	"strings"
)

// How field-code ruby treats several annotation candidates found between
// begin and end markers.
type AnnotationMerge int

const (
	// AnnotationMergeReplace keeps the latest candidate.
	AnnotationMergeReplace AnnotationMerge = iota
	// AnnotationMergeConcat joins all candidates in document order.
	AnnotationMergeConcat
)

var annotationMergeNames = []string{"replace", "concat"}

// AnnotationMergeNames returns list of possible string values.
func AnnotationMergeNames() []string {
	return append([]string(nil), annotationMergeNames...)
}

func (m AnnotationMerge) String() string {
	if m < 0 || int(m) >= len(annotationMergeNames) {
		return fmt.Sprintf("AnnotationMerge(%d)", int(m))
	}
	return annotationMergeNames[m]
}

// ParseAnnotationMerge converts string to AnnotationMerge, case insensitive.
func ParseAnnotationMerge(name string) (AnnotationMerge, error) {
	for i, n := range annotationMergeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return AnnotationMerge(i), nil
		}
	}
	return AnnotationMergeReplace, fmt.Errorf("%s is not a valid AnnotationMerge, try [%s]", name, strings.Join(annotationMergeNames, ", "))
}

func (m AnnotationMerge) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *AnnotationMerge) UnmarshalText(text []byte) error {
	v, err := ParseAnnotationMerge(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
