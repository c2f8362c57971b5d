package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCondition_Valid(t *testing.T) {
	for _, value := range []string{"good", "minor-damage", "major-damage", "retired"} {
		condition, err := NewCondition(value)
		assert.NoError(t, err)
		assert.Equal(t, value, condition.String())
	}
}

func TestNewCondition_Invalid(t *testing.T) {
	for _, value := range []string{"", "broken", "GOOD", "minor damage"} {
		_, err := NewCondition(value)
		assert.Error(t, err)
	}
}
