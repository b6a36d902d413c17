package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordIdentityDeterminism(t *testing.T) {
	a := RecordIdentity("钢厂A", "螺纹钢", "HRB400", "2024-01-01 00:00", "项目X")
	b := RecordIdentity("钢厂A", "螺纹钢", "HRB400", "2024-01-01 00:00", "项目X")
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestRecordIdentityFieldSensitivity(t *testing.T) {
	base := RecordIdentity("钢厂A", "螺纹钢", "HRB400", "2024-01-01 00:00", "项目X")

	assert.NotEqual(t, base, RecordIdentity("钢厂B", "螺纹钢", "HRB400", "2024-01-01 00:00", "项目X"))
	assert.NotEqual(t, base, RecordIdentity("钢厂A", "盘螺", "HRB400", "2024-01-01 00:00", "项目X"))
	assert.NotEqual(t, base, RecordIdentity("钢厂A", "螺纹钢", "HRB500", "2024-01-01 00:00", "项目X"))
	assert.NotEqual(t, base, RecordIdentity("钢厂A", "螺纹钢", "HRB400", "2024-01-02 00:00", "项目X"))
	assert.NotEqual(t, base, RecordIdentity("钢厂A", "螺纹钢", "HRB400", "2024-01-01 00:00", "项目Y"))
}

func TestRecordIdentityEmptyFields(t *testing.T) {
	// Total even on fully-empty input.
	a := RecordIdentity("", "", "", "", "")
	b := RecordIdentity("", "", "", "", "")
	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}
