package helper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"stepup_backend/internals/constants"
)

func TestCapabilityGates(t *testing.T) {
	tests := []struct {
		role             string
		staff            bool
		canGrade         bool
		canManageCatalog bool
		super            bool
	}{
		{constants.RoleStudent, false, false, false, false},
		{constants.RoleParent, false, false, false, false},
		{constants.RoleTeacher, true, true, false, false},
		{constants.RoleAdmin, true, true, true, false},
		{constants.RoleOwner, true, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			rc := RequestContext{UserID: uuid.New(), Role: tt.role, CentreID: uuid.New()}
			assert.Equal(t, tt.staff, rc.IsStaff())
			assert.Equal(t, tt.canGrade, rc.CanGrade())
			assert.Equal(t, tt.canManageCatalog, rc.CanManageCatalog())
			assert.Equal(t, tt.staff, rc.CanViewAllPlacements())
			assert.Equal(t, tt.super, rc.IsSuper())
		})
	}
}

func TestSameTenant(t *testing.T) {
	centre := uuid.New()
	other := uuid.New()

	teacher := RequestContext{Role: constants.RoleTeacher, CentreID: centre}
	assert.True(t, teacher.SameTenant(centre))
	assert.False(t, teacher.SameTenant(other))

	owner := RequestContext{Role: constants.RoleOwner}
	assert.True(t, owner.SameTenant(centre))
	assert.True(t, owner.SameTenant(other))
}

func TestScopeCentre(t *testing.T) {
	centre := uuid.New()
	requested := uuid.New()

	student := RequestContext{Role: constants.RoleStudent, CentreID: centre}
	got, scoped := student.ScopeCentre(requested)
	assert.True(t, scoped)
	assert.Equal(t, centre, got, "non-owners are pinned to their own centre")

	owner := RequestContext{Role: constants.RoleOwner}
	got, scoped = owner.ScopeCentre(requested)
	assert.True(t, scoped)
	assert.Equal(t, requested, got)

	_, scoped = owner.ScopeCentre(uuid.Nil)
	assert.False(t, scoped, "owner without a requested centre sees everything")
}
