package model

// Session identifies the logged-in staff member and the restaurant context
// the agent is scoped to. Issued by the auth collaborator; this layer only
// consumes it.
type Session struct {
	UserID       string
	RestaurantID string
	Token        string
}

// Ready reports whether the session carries both identifiers the live
// channel needs.
func (s Session) Ready() bool {
	return s.UserID != "" && s.RestaurantID != ""
}

// DeviceTokenState is the lifecycle state of the device push token.
type DeviceTokenState string

const (
	TokenUnissued   DeviceTokenState = "unissued"
	TokenIssued     DeviceTokenState = "issued"
	TokenRegistered DeviceTokenState = "registered"
	TokenRevoked    DeviceTokenState = "revoked"
)

// PermissionState is the push permission decision for this device profile.
type PermissionState string

const (
	PermissionUnset   PermissionState = "unset"
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
)
