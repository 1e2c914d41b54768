package cases

// Status identifies one node of the case lifecycle graph. The zero value is
// not a valid status; persisted cases always carry one of the named states.
type Status string

const (
	StatusNew                    Status = "new"
	StatusCaseAgentReview        Status = "case_agent_review"
	StatusAdminReview            Status = "admin_review"
	StatusAssignedToHospital     Status = "assigned_to_hospital"
	StatusAssignedToUniversity   Status = "assigned_to_university"
	StatusHospitalReview         Status = "hospital_review"
	StatusCaseAccepted           Status = "case_accepted"
	StatusCaseRejected           Status = "case_rejected"
	StatusTreatmentPlanUploaded  Status = "treatment_plan_uploaded"
	StatusTravelDocuments        Status = "travel_documents"
	StatusVisaProcessingDocs     Status = "visa_processing_documents"
	StatusVisaProcessingPayments Status = "visa_processing_payments"
	StatusVisaApproved           Status = "visa_approved"
	StatusVisaRejected           Status = "visa_rejected"
	StatusVisaReapply            Status = "visa_reapply"
	StatusVisaTerminate          Status = "visa_terminate"
	StatusVisaCopyUploaded       Status = "visa_copy_uploaded"
	StatusCreditPaymentUpload    Status = "credit_payment_upload"
	StatusInvoiceGenerated       Status = "invoice_generated"
	StatusTicketBooking          Status = "ticket_booking"
	StatusPatientManifest        Status = "patient_manifest"
	StatusAdmissionFormat        Status = "admission_format"
	StatusRegistration           Status = "registration"
	StatusTreatmentInProgress    Status = "treatment_in_progress"
	StatusFinalReport            Status = "final_report"
	StatusDischarge              Status = "discharge"
	StatusCaseClosed             Status = "case_closed"
)

// trunk is the happy-path sequence from intake to closure.
// assigned_to_university shares the assigned_to_hospital position and is
// therefore not listed separately.
var trunk = []Status{
	StatusNew,
	StatusCaseAgentReview,
	StatusAdminReview,
	StatusAssignedToHospital,
	StatusHospitalReview,
	StatusCaseAccepted,
	StatusTreatmentPlanUploaded,
	StatusTravelDocuments,
	StatusVisaProcessingDocs,
	StatusVisaProcessingPayments,
	StatusVisaApproved,
	StatusVisaCopyUploaded,
	StatusCreditPaymentUpload,
	StatusInvoiceGenerated,
	StatusTicketBooking,
	StatusPatientManifest,
	StatusAdmissionFormat,
	StatusRegistration,
	StatusTreatmentInProgress,
	StatusFinalReport,
	StatusDischarge,
	StatusCaseClosed,
}

var trunkIndex = func() map[Status]int {
	m := make(map[Status]int, len(trunk))
	for i, s := range trunk {
		m[s] = i
	}
	return m
}()

// excursionFork maps each off-trunk status to the trunk node it forks from,
// so that an excursion never appears to regress past its fork point.
var excursionFork = map[Status]Status{
	StatusAssignedToUniversity: StatusAssignedToHospital,
	StatusCaseRejected:         StatusHospitalReview,
	StatusVisaRejected:         StatusVisaProcessingPayments,
	StatusVisaTerminate:        StatusVisaProcessingPayments,
	StatusVisaReapply:          StatusVisaProcessingDocs,
}

var validStatuses = func() map[Status]bool {
	m := make(map[Status]bool, len(trunk)+len(excursionFork))
	for _, s := range trunk {
		m[s] = true
	}
	for s := range excursionFork {
		m[s] = true
	}
	return m
}()

// IsValid reports whether s is one of the named lifecycle states.
func (s Status) IsValid() bool { return validStatuses[s] }

// OnTrunk reports whether s sits on the happy path.
func (s Status) OnTrunk() bool {
	_, ok := trunkIndex[s]
	return ok
}

// ProgressIndex returns the trunk position of s. Excursion states report the
// position of the trunk node they forked from. Unknown statuses report 0.
func ProgressIndex(s Status) int {
	if i, ok := trunkIndex[s]; ok {
		return i
	}
	if fork, ok := excursionFork[s]; ok {
		return trunkIndex[fork]
	}
	return 0
}

// Progress returns the completion fraction for s in the range (0, 1].
func Progress(s Status) float64 {
	return float64(ProgressIndex(s)+1) / float64(len(trunk))
}

// TrunkLength returns the number of happy-path states.
func TrunkLength() int { return len(trunk) }
