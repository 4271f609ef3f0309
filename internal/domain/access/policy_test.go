package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bidm-api/internal/domain/access"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de normalización de equipos
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeTeam(t *testing.T) {
	assert.Equal(t, "pod1", access.NormalizeTeam("POD 1"))
	assert.Equal(t, "pod1", access.NormalizeTeam(" pod1 "))
	assert.Equal(t, "pod1", access.NormalizeTeam("P o D\t1"))
	assert.Equal(t, "", access.NormalizeTeam("   "))
}

// Escenario de referencia: equipo del bid "POD 1" vs equipo del caller
// " pod1 " (espacios extra, distinta capitalización) → mismo equipo.
func TestSameTeam_CasingYEspaciosIrrelevantes(t *testing.T) {
	assert.True(t, access.SameTeam("POD 1", " pod1 "))
	assert.True(t, access.SameTeam("pod1", "POD 1"))
	assert.False(t, access.SameTeam("POD 1", "POD 2"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de HasAccess
// ──────────────────────────────────────────────────────────────────────────────

func TestHasAccess_MismoEquipoNormalizado(t *testing.T) {
	s := access.Subject{UserID: "u1", Role: entity.RolePM, Team: " pod1 "}
	assert.True(t, access.HasAccess(s, "POD 1", "otro-usuario", false))
}

func TestHasAccess_SuperAdminSiempre(t *testing.T) {
	s := access.Subject{UserID: "u1", Role: entity.RoleSuperAdmin, Team: "equipo-x"}
	assert.True(t, access.HasAccess(s, "POD 9", "otro-usuario", false))
}

func TestHasAccess_CreadorSiempre(t *testing.T) {
	s := access.Subject{UserID: "u1", Role: entity.RolePM, Team: "equipo-x"}
	assert.True(t, access.HasAccess(s, "POD 9", "u1", false))
}

func TestHasAccess_ConcesionExplicita(t *testing.T) {
	s := access.Subject{UserID: "u1", Role: entity.RoleVM, Team: "equipo-x"}
	assert.True(t, access.HasAccess(s, "POD 9", "otro", true))
	assert.False(t, access.HasAccess(s, "POD 9", "otro", false),
		"sin concesión, otro equipo no ve el bid")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de CanManage
// ──────────────────────────────────────────────────────────────────────────────

func TestCanManage(t *testing.T) {
	creador := access.Subject{UserID: "u1", Role: entity.RolePM, Team: "otro"}
	assert.True(t, access.CanManage(creador, "POD 1", "u1"))

	adminMismoEquipo := access.Subject{UserID: "u2", Role: entity.RoleAdmin, Team: "pod 1"}
	assert.True(t, access.CanManage(adminMismoEquipo, "POD 1", "u1"))

	adminOtroEquipo := access.Subject{UserID: "u3", Role: entity.RoleAdmin, Team: "pod 2"}
	assert.False(t, access.CanManage(adminOtroEquipo, "POD 1", "u1"))

	pmMismoEquipo := access.Subject{UserID: "u4", Role: entity.RolePM, Team: "pod 1"}
	assert.False(t, access.CanManage(pmMismoEquipo, "POD 1", "u1"),
		"PM no gestiona concesiones aunque sea del equipo")

	super := access.Subject{UserID: "u5", Role: entity.RoleSuperAdmin, Team: "x"}
	assert.True(t, access.CanManage(super, "POD 1", "u1"))
}
