package team

// Action is a team operation subject to a role check.
type Action string

const (
	ActionEditTeam   Action = "edit_team"
	ActionDeleteTeam Action = "delete_team"
	ActionInvite     Action = "invite"
	ActionRemove     Action = "remove_member"
	ActionSetRole    Action = "set_role"
)

// Can is the single place the role table lives. Admins manage the team and
// its roster, editors and viewers manage neither. Team deletion is reserved
// for the owner and checked separately.
func Can(role Role, action Action) bool {
	switch role {
	case RoleAdmin:
		return action != ActionDeleteTeam
	case RoleEditor, RoleViewer:
		return false
	}
	return false
}
