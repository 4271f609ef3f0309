// Package access centraliza la política de visibilidad de bids. Todas las
// superficies (listados, detalle, acciones) consultan este único punto en
// lugar de duplicar la comparación de equipos por pantalla.
package access

import (
	"strings"
	"unicode"

	"github.com/jhoicas/bidm-api/internal/domain/entity"
)

// Subject caller autenticado, construido desde los claims del JWT.
type Subject struct {
	UserID string
	Role   string
	Team   string
}

// NormalizeTeam normaliza un nombre de equipo para comparación: minúsculas y
// sin ningún espacio en blanco. "POD 1" y " pod1 " son el mismo equipo.
func NormalizeTeam(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// SameTeam compara dos nombres de equipo normalizados.
func SameTeam(a, b string) bool {
	return NormalizeTeam(a) == NormalizeTeam(b)
}

// IsSuperAdmin indica si el subject tiene el rol de bypass global.
func (s Subject) IsSuperAdmin() bool {
	return s.Role == entity.RoleSuperAdmin
}

// HasAccess decide si el caller puede ver un bid: super admin, mismo equipo
// (normalizado), creador, o concesión explícita.
func HasAccess(s Subject, bidTeam, bidCreator string, hasGrant bool) bool {
	if s.IsSuperAdmin() {
		return true
	}
	if s.UserID != "" && s.UserID == bidCreator {
		return true
	}
	if SameTeam(s.Team, bidTeam) {
		return true
	}
	return hasGrant
}

// CanManage decide si el caller puede conceder/denegar/revocar acceso al bid:
// creador, admin del mismo equipo, o super admin.
func CanManage(s Subject, bidTeam, bidCreator string) bool {
	if s.IsSuperAdmin() {
		return true
	}
	if s.UserID != "" && s.UserID == bidCreator {
		return true
	}
	return s.Role == entity.RoleAdmin && SameTeam(s.Team, bidTeam)
}
