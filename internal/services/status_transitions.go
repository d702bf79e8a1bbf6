package services

// Allowed proposal status transitions. Deal statuses deliberately have no
// table like this: nothing constrains them in storage, and every change is
// recorded in deal_events instead.
var ProposalTransitions = map[string]map[string]bool{
	"draft":    {"sent": true},
	"sent":     {"viewed": true, "expired": true},
	"viewed":   {"accepted": true, "rejected": true, "expired": true},
	"accepted": {},
	"rejected": {},
	"expired":  {},
}

func canTransition(current, to string, table map[string]map[string]bool) bool {
	if current == "" {
		// empty in storage: allow any starting status
		return true
	}
	nexts, ok := table[current]
	if !ok {
		return false
	}
	return nexts[to]
}
