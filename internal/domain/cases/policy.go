package cases

// TransitionContext carries everything a guard may inspect. Guards are pure:
// they read the context and either admit or silently drop a candidate.
type TransitionContext struct {
	Case  *Case
	Actor Actor
	// MissingRequired is the document gate's verdict for the actor at the
	// case's current status, computed by the caller.
	MissingRequired []DocumentType
}

type guard func(TransitionContext) bool

// candidate pairs a reachable status with the guard that admits it. A nil
// guard always admits.
type candidate struct {
	next  Status
	guard guard
}

func always(TransitionContext) bool { return true }

func ownsCase(tc TransitionContext) bool {
	return tc.Case.AgentID != "" && tc.Case.AgentID == tc.Actor.ID
}

func agentTrackMatches(tc TransitionContext) bool {
	if tc.Actor.AgentType == "" {
		return true
	}
	if tc.Case.UniversityTrack() {
		return tc.Actor.AgentType == AgentTypeUniversity
	}
	return tc.Actor.AgentType == AgentTypeHospital
}

func documentsComplete(tc TransitionContext) bool {
	return len(tc.MissingRequired) == 0
}

func hospitalAssigned(tc TransitionContext) bool {
	return tc.Case.AssignedHospital != ""
}

func universityAssigned(tc TransitionContext) bool {
	return tc.Case.AssignedUniversity != ""
}

func planExists(tc TransitionContext) bool {
	return tc.Case.TreatmentPlan != nil
}

// institutionBound checks the receiving-side binding: hospital membership on
// hospital-track cases, university membership on university-track cases.
func institutionBound(tc TransitionContext) bool {
	if tc.Case.UniversityTrack() {
		return tc.Actor.BoundToUniversity(tc.Case.AssignedUniversity)
	}
	return tc.Case.AssignedHospital != "" && tc.Actor.BoundToHospital(tc.Case.AssignedHospital)
}

func all(gs ...guard) guard {
	return func(tc TransitionContext) bool {
		for _, g := range gs {
			if !g(tc) {
				return false
			}
		}
		return true
	}
}

// agentTransitions: intake review plus the visa-copy / credit-payment leg.
// Every agent edge additionally requires case ownership and a track match.
var agentTransitions = map[Status][]candidate{
	StatusNew: {
		{StatusCaseAgentReview, always},
	},
	StatusCaseAgentReview: {
		{StatusAdminReview, documentsComplete},
	},
	StatusVisaApproved: {
		{StatusVisaCopyUploaded, always},
	},
	StatusVisaCopyUploaded: {
		{StatusCreditPaymentUpload, always},
	},
}

// adminTransitions: review/assignment, rejection handling, visa decisions and
// the payment→ticket→manifest→registration segment.
var adminTransitions = map[Status][]candidate{
	StatusAdminReview: {
		{StatusAssignedToHospital, hospitalAssigned},
		{StatusAssignedToUniversity, universityAssigned},
	},
	StatusCaseRejected: {
		{StatusAssignedToHospital, hospitalAssigned},
		{StatusAdminReview, always},
	},
	StatusVisaProcessingPayments: {
		{StatusVisaApproved, always},
		{StatusVisaRejected, always},
		{StatusVisaTerminate, always},
	},
	StatusVisaRejected: {
		{StatusVisaReapply, always},
		{StatusVisaTerminate, always},
	},
	StatusVisaReapply: {
		{StatusVisaProcessingDocs, always},
	},
	StatusCreditPaymentUpload: {
		{StatusInvoiceGenerated, always},
	},
	StatusInvoiceGenerated: {
		{StatusTicketBooking, always},
	},
	StatusTicketBooking: {
		{StatusPatientManifest, always},
	},
	StatusAdmissionFormat: {
		{StatusRegistration, always},
	},
}

// hospitalCandidates is shared by the two assignment entry states.
var hospitalEntryCandidates = []candidate{
	{StatusHospitalReview, always},
	{StatusCaseAccepted, always},
	{StatusCaseRejected, always},
}

// hospitalTransitions: acceptance, plan upload, travel documentation
// pass-through, and the in-treatment tail of the trunk. Every edge is
// additionally gated by the institution binding.
var hospitalTransitions = map[Status][]candidate{
	StatusAssignedToHospital:   hospitalEntryCandidates,
	StatusAssignedToUniversity: hospitalEntryCandidates,
	StatusHospitalReview: {
		{StatusCaseAccepted, always},
		{StatusCaseRejected, always},
	},
	StatusCaseAccepted: {
		{StatusTreatmentPlanUploaded, planExists},
	},
	StatusTreatmentPlanUploaded: {
		{StatusTravelDocuments, always},
	},
	StatusTravelDocuments: {
		{StatusVisaProcessingDocs, always},
	},
	StatusPatientManifest: {
		{StatusAdmissionFormat, always},
	},
	StatusRegistration: {
		{StatusTreatmentInProgress, always},
	},
	StatusTreatmentInProgress: {
		{StatusFinalReport, always},
	},
	StatusFinalReport: {
		{StatusDischarge, always},
	},
	StatusDischarge: {
		{StatusCaseClosed, always},
	},
}

// financeTransitions: only the visa documents→payments handoff. Finance
// observes credit_payment_upload but never advances past it.
var financeTransitions = map[Status][]candidate{
	StatusVisaProcessingDocs: {
		{StatusVisaProcessingPayments, always},
	},
}

// roleTables maps each role to its transition table and the guard applied to
// every edge of that role. Clients never transition.
var roleTables = map[Role]struct {
	table    map[Status][]candidate
	roleWide guard
}{
	RoleAgent:    {agentTransitions, all(ownsCase, agentTrackMatches)},
	RoleAdmin:    {adminTransitions, always},
	RoleHospital: {hospitalTransitions, institutionBound},
	RoleFinance:  {financeTransitions, always},
	RoleClient:   {nil, always},
}

// LegalNextStatuses returns the set of statuses the actor may move the case
// to from its current status. Guard failures drop candidates silently; the
// caller explains denials through the document gate or field checks.
func LegalNextStatuses(tc TransitionContext) []Status {
	rt, ok := roleTables[tc.Actor.Role]
	if !ok || rt.table == nil {
		return nil
	}
	if !rt.roleWide(tc) {
		return nil
	}
	var out []Status
	for _, cand := range rt.table[tc.Case.Status] {
		if cand.guard == nil || cand.guard(tc) {
			out = append(out, cand.next)
		}
	}
	return out
}

// CanTransition reports whether next is in the actor's legal set.
func CanTransition(tc TransitionContext, next Status) bool {
	for _, s := range LegalNextStatuses(tc) {
		if s == next {
			return true
		}
	}
	return false
}
