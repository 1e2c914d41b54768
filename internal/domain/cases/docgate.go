package cases

// DocumentPermissions describes which document types a role may upload at a
// status and which of them must be present.
type DocumentPermissions struct {
	Available []DocumentType `json:"available"`
	Required  []DocumentType `json:"required"`
}

type roleStatus struct {
	role   Role
	status Status
}

// documentGate associates each (role, status) pair that handles paperwork
// with its permitted and required document types. Pairs absent from the
// table allow nothing. Only the case_agent_review → admin_review edge is
// blocked on completeness; elsewhere missing entries surface as warnings.
var documentGate = map[roleStatus]DocumentPermissions{
	{RoleAgent, StatusNew}: {
		Available: []DocumentType{DocPassportCopy, DocMedicalReports, DocAcademicRecords},
	},
	{RoleAgent, StatusCaseAgentReview}: {
		Available: []DocumentType{DocPassportCopy, DocMedicalReports, DocAcademicRecords},
		Required:  []DocumentType{DocPassportCopy, DocMedicalReports},
	},
	{RoleAgent, StatusVisaApproved}: {
		Available: []DocumentType{DocVisaCopy},
		Required:  []DocumentType{DocVisaCopy},
	},
	{RoleAgent, StatusVisaCopyUploaded}: {
		Available: []DocumentType{DocCreditPaymentProof},
		Required:  []DocumentType{DocCreditPaymentProof},
	},
	{RoleHospital, StatusCaseAccepted}: {
		Available: []DocumentType{DocTreatmentPlan, DocAdmissionLetter},
		Required:  []DocumentType{DocTreatmentPlan},
	},
	{RoleHospital, StatusTravelDocuments}: {
		Available: []DocumentType{DocTravelItinerary, DocAdmissionLetter},
	},
	{RoleHospital, StatusFinalReport}: {
		Available: []DocumentType{DocFinalReport},
		Required:  []DocumentType{DocFinalReport},
	},
	{RoleHospital, StatusDischarge}: {
		Available: []DocumentType{DocDischargeSummary},
	},
	{RoleFinance, StatusVisaProcessingDocs}: {
		Available: []DocumentType{DocVisaApplication, DocFinancialGuarantee},
		Required:  []DocumentType{DocVisaApplication},
	},
	{RoleFinance, StatusVisaProcessingPayments}: {
		Available: []DocumentType{DocVisaPaymentReceipt},
		Required:  []DocumentType{DocVisaPaymentReceipt},
	},
	{RoleAdmin, StatusInvoiceGenerated}: {
		Available: []DocumentType{DocInvoice},
	},
	{RoleAdmin, StatusTicketBooking}: {
		Available: []DocumentType{DocFlightTicket},
	},
}

// DocumentGate returns the permitted and required document types for the
// role at the status. Unlisted pairs yield empty permissions.
func DocumentGate(role Role, status Status) DocumentPermissions {
	return documentGate[roleStatus{role, status}]
}

// MissingRequired returns the required document types the case does not yet
// have for the role at the status, preserving table order.
func MissingRequired(role Role, status Status, uploaded map[DocumentType]bool) []DocumentType {
	perms := DocumentGate(role, status)
	var missing []DocumentType
	for _, t := range perms.Required {
		if !uploaded[t] {
			missing = append(missing, t)
		}
	}
	return missing
}

// MayUpload reports whether the role may attach a document of type t while
// the case sits at status.
func MayUpload(role Role, status Status, t DocumentType) bool {
	if role == RoleAdmin {
		// Admins may attach paperwork at any point in the workflow.
		return true
	}
	for _, a := range DocumentGate(role, status).Available {
		if a == t {
			return true
		}
	}
	return false
}
