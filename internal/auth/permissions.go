package auth

import "strings"

type StaffPermission string

const (
	PermOrders      StaffPermission = "orders"
	PermMenu        StaffPermission = "menu"
	PermInventory   StaffPermission = "inventory"
	PermAnalytics   StaffPermission = "analytics"
	PermBlog        StaffPermission = "blog"
	PermReviews     StaffPermission = "reviews"
	PermEvents      StaffPermission = "events"
	PermStaffAdmin  StaffPermission = "staff_admin"
	PermContentEdit StaffPermission = "content_edit"
)

var apiPermissionMap = map[string]StaffPermission{
	"/api/orders":                PermOrders,
	"/api/menu":                  PermMenu,
	"PUT /api/todays-special":    PermMenu,
	"PUT /api/menu-availability": PermMenu,
	"/api/inventory":             PermInventory,
	"/api/analytics":             PermAnalytics,
	"PUT /api/blog-posts":        PermBlog,
	"POST /api/blog-posts":       PermBlog,
	"PUT /api/about-us-content":  PermContentEdit,
	"/api/event-bookings":        PermEvents,
	"/api/roles-permissions":     PermStaffAdmin,
	"/api/save-credentials":      PermStaffAdmin,
	"/api/uploads":               PermInventory,
}

// RolePermissions is one entry of the roles-permissions document. A "*"
// permission grants everything.
type RolePermissions struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type RolesDocument struct {
	Roles []RolePermissions `json:"roles"`
}

func (d RolesDocument) HasPermission(role StaffRole, perm StaffPermission) bool {
	for _, entry := range d.Roles {
		if entry.Name != string(role) {
			continue
		}
		for _, p := range entry.Permissions {
			if p == "*" || p == string(perm) {
				return true
			}
		}
	}
	return false
}

// PermissionForAPI resolves the staff permission guarding a path. Keys may be
// method-qualified ("PUT /api/blog-posts"); the longest matching path wins,
// with method-specific entries preferred on a length tie. A nil result means
// the route needs no specific permission beyond a valid session.
func PermissionForAPI(path string, method string) *StaffPermission {
	method = strings.ToUpper(strings.TrimSpace(method))

	var bestPath string
	var bestPerm *StaffPermission
	var bestMethodSpecific bool

	for key, perm := range apiPermissionMap {
		keyPath := key
		methodSpecific := false
		if strings.Contains(key, " ") {
			parts := strings.SplitN(key, " ", 2)
			keyMethod := strings.ToUpper(strings.TrimSpace(parts[0]))
			keyPath = strings.TrimSpace(parts[1])
			methodSpecific = true
			if method == "" || method != keyMethod {
				continue
			}
		}

		if !strings.HasPrefix(path, keyPath) {
			continue
		}

		if bestPerm == nil || len(keyPath) > len(bestPath) || (len(keyPath) == len(bestPath) && methodSpecific && !bestMethodSpecific) {
			bestPath = keyPath
			bestMethodSpecific = methodSpecific
			permCopy := perm
			bestPerm = &permCopy
		}
	}

	return bestPerm
}
