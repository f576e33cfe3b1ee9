// Package fresh has never been generated: its state types do not exist yet.
package fresh

//intellenum:enum
//intellenum:member Bronze 1
//intellenum:member Silver 2
type Tier struct {
	tierState
}

//intellenum:enum
//intellenum:member Draft "draft"
type Stage struct {
	stageState
}

//intellenum:defaults debug=Omit

func (t Tier) Next() Tier {
	return TierSilver
}
