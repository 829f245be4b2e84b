package domain

// Authorizer decides whether a user may mutate tasks and subtasks. The rules
// are supplied by the surrounding system; the default policy admits any
// project member.
type Authorizer interface {
	CanEditTask(actor string, project *Project, task *Task) bool
	CanToggleSubtask(actor string, project *Project, task *Task) bool
}

// MemberPolicy allows any project member to edit tasks and toggle subtasks.
type MemberPolicy struct{}

func (MemberPolicy) CanEditTask(actor string, project *Project, _ *Task) bool {
	return project.HasMember(actor)
}

func (MemberPolicy) CanToggleSubtask(actor string, project *Project, _ *Task) bool {
	return project.HasMember(actor)
}
