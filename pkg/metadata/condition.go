package metadata

import "fmt"

// Condition is the closed lifecycle state of an asset.
type Condition string

const (
	ConditionGood        Condition = "good"
	ConditionMinorDamage Condition = "minor-damage"
	ConditionMajorDamage Condition = "major-damage"
	ConditionRetired     Condition = "retired"
)

func NewCondition(value string) (Condition, error) {
	condition := Condition(value)
	if !condition.isValid() {
		return "", fmt.Errorf("invalid condition: %s", value)
	}
	return condition, nil
}

func (c Condition) isValid() bool {
	switch c {
	case ConditionGood, ConditionMinorDamage, ConditionMajorDamage, ConditionRetired:
		return true
	default:
		return false
	}
}

func (c Condition) String() string {
	return string(c)
}
