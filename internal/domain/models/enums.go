package models

// CandidateStatus is the recruitment pipeline state of a candidate.
type CandidateStatus string

const (
	CandidateWaitingForInterview CandidateStatus = "WAITING_FOR_INTERVIEW"
	CandidateWaitingForApproval  CandidateStatus = "WAITING_FOR_APPROVAL"
	CandidateWaitingForResponse  CandidateStatus = "WAITING_FOR_RESPONSE"
	CandidateOpen                CandidateStatus = "OPEN"
	CandidatePassedInterview     CandidateStatus = "PASSED_INTERVIEW"
	CandidateApprovedOffer       CandidateStatus = "APPROVED_OFFER"
	CandidateRejectedOffer       CandidateStatus = "REJECTED_OFFER"
	CandidateAcceptedOffer       CandidateStatus = "ACCEPTED_OFFER"
	CandidateDeclinedOffer       CandidateStatus = "DECLINED_OFFER"
	CandidateCancelledOffer      CandidateStatus = "CANCELLED_OFFER"
	CandidateFailedInterview     CandidateStatus = "FAILED_INTERVIEW"
	CandidateCancelledInterview  CandidateStatus = "CANCELLED_INTERVIEW"
	CandidateBanned              CandidateStatus = "BANNED"
)

var CandidateStatuses = []CandidateStatus{
	CandidateWaitingForInterview, CandidateWaitingForApproval, CandidateWaitingForResponse,
	CandidateOpen, CandidatePassedInterview, CandidateApprovedOffer, CandidateRejectedOffer,
	CandidateAcceptedOffer, CandidateDeclinedOffer, CandidateCancelledOffer,
	CandidateFailedInterview, CandidateCancelledInterview, CandidateBanned,
}

func (s CandidateStatus) Label() string {
	switch s {
	case CandidateWaitingForInterview:
		return "Waiting for Interview"
	case CandidateWaitingForApproval:
		return "Waiting for Approval"
	case CandidateWaitingForResponse:
		return "Waiting for Response"
	case CandidateOpen:
		return "Open"
	case CandidatePassedInterview:
		return "Passed Interview"
	case CandidateApprovedOffer:
		return "Approved Offer"
	case CandidateRejectedOffer:
		return "Rejected Offer"
	case CandidateAcceptedOffer:
		return "Accepted Offer"
	case CandidateDeclinedOffer:
		return "Declined Offer"
	case CandidateCancelledOffer:
		return "Cancelled Offer"
	case CandidateFailedInterview:
		return "Failed Interview"
	case CandidateCancelledInterview:
		return "Cancelled Interview"
	case CandidateBanned:
		return "Banned"
	}
	return string(s)
}

// HighestLevel is a candidate's highest education level.
type HighestLevel string

const (
	LevelHighSchool HighestLevel = "HIGH_SCHOOL"
	LevelBachelor   HighestLevel = "BACHELOR"
	LevelMaster     HighestLevel = "MASTER"
	LevelPhD        HighestLevel = "PHD"
)

var HighestLevels = []HighestLevel{LevelHighSchool, LevelBachelor, LevelMaster, LevelPhD}

func (l HighestLevel) Label() string {
	switch l {
	case LevelHighSchool:
		return "High School"
	case LevelBachelor:
		return "Bachelor"
	case LevelMaster:
		return "Master"
	case LevelPhD:
		return "PHD"
	}
	return string(l)
}

type JobStatus string

const (
	JobDraft     JobStatus = "DRAFT"
	JobOpen      JobStatus = "OPEN"
	JobClosed    JobStatus = "CLOSED"
	JobCancelled JobStatus = "CANCELLED"
)

var JobStatuses = []JobStatus{JobDraft, JobOpen, JobClosed, JobCancelled}

func (s JobStatus) Label() string {
	switch s {
	case JobDraft:
		return "Draft"
	case JobOpen:
		return "Open"
	case JobClosed:
		return "Closed"
	case JobCancelled:
		return "Cancelled"
	}
	return string(s)
}

type InterviewStatus string

const (
	InterviewDraft     InterviewStatus = "DRAFT"
	InterviewInvited   InterviewStatus = "INVITED"
	InterviewCompleted InterviewStatus = "COMPLETED"
	InterviewCancelled InterviewStatus = "CANCELLED"
)

var InterviewStatuses = []InterviewStatus{InterviewDraft, InterviewInvited, InterviewCompleted, InterviewCancelled}

func (s InterviewStatus) Label() string {
	switch s {
	case InterviewDraft:
		return "Draft"
	case InterviewInvited:
		return "Invited"
	case InterviewCompleted:
		return "Completed"
	case InterviewCancelled:
		return "Cancelled"
	}
	return string(s)
}

type InterviewResult string

const (
	ResultPending InterviewResult = "PENDING"
	ResultPassed  InterviewResult = "PASSED"
	ResultFailed  InterviewResult = "FAILED"
)

var InterviewResults = []InterviewResult{ResultPending, ResultPassed, ResultFailed}

func (r InterviewResult) Label() string {
	switch r {
	case ResultPending:
		return "Pending"
	case ResultPassed:
		return "Passed"
	case ResultFailed:
		return "Failed"
	}
	return string(r)
}

// GenderLabel renders the backend's boolean gender flag.
func GenderLabel(male bool) string {
	if male {
		return "Male"
	}
	return "Female"
}

// ActiveLabel renders an active flag.
func ActiveLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}
