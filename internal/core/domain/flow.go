package domain

// FlowState is a step of a form submission attempt.
type FlowState string

const (
	StateIdle               FlowState = "idle"
	StateValidating         FlowState = "validating"
	StateCheckingUniqueness FlowState = "checking_uniqueness"
	StateCreatingAccount    FlowState = "creating_account"
	StatePersistingProfile  FlowState = "persisting_profile"
	StateAuthenticating     FlowState = "authenticating"
)

// validFlowTransitions covers registration, login and profile update attempts.
var validFlowTransitions = map[FlowState][]FlowState{
	StateIdle:               {StateValidating},
	StateValidating:         {StateIdle, StateCheckingUniqueness, StateAuthenticating, StatePersistingProfile},
	StateCheckingUniqueness: {StateIdle, StateCreatingAccount},
	StateCreatingAccount:    {StateIdle, StatePersistingProfile},
	StatePersistingProfile:  {StateIdle},
	StateAuthenticating:     {StateIdle},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s FlowState) CanTransitionTo(next FlowState) bool {
	for _, allowed := range validFlowTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NavigationIntent tells the presentation layer which screen comes next.
type NavigationIntent string

const (
	NavigateNone  NavigationIntent = "none"
	NavigateLogin NavigationIntent = "login"
	NavigateMain  NavigationIntent = "main"
	NavigateHome  NavigationIntent = "home"
)
