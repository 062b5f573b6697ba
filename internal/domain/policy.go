package domain

// CanModify is the single ownership policy for mutating operations:
// a resource may only be changed by the user it belongs to.
func CanModify(ownerID, actorID string) bool {
	if ownerID == "" || actorID == "" {
		return false
	}
	return ownerID == actorID
}
