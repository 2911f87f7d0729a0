package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Sessions ──────────────────────────────────────────────────────
	ErrSessionNotFound ErrCode = "SESSION_NOT_FOUND"
	ErrProcessNotFound ErrCode = "PROCESS_NOT_FOUND"

	// ─── Simulation ────────────────────────────────────────────────────
	ErrUnknownAlgorithm ErrCode = "UNKNOWN_ALGORITHM"
	ErrRunInFlight      ErrCode = "RUN_IN_FLIGHT"
	ErrSimulationFailed ErrCode = "SIMULATION_FAILED"
	ErrResultSuperseded ErrCode = "RESULT_SUPERSEDED"

	// ─── Quiz ──────────────────────────────────────────────────────────
	ErrQuizActive      ErrCode = "QUIZ_ACTIVE"
	ErrQuizBusy        ErrCode = "QUIZ_BUSY"
	ErrQuizNotAwaiting ErrCode = "QUIZ_NOT_AWAITING_ANSWER"
	ErrQuizFailed      ErrCode = "QUIZ_FAILED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrSessionNotFound:
		return "Session not found or expired."
	case ErrProcessNotFound:
		return "No process with that ID exists in the batch."
	case ErrUnknownAlgorithm:
		return "Unknown scheduling algorithm."
	case ErrRunInFlight:
		return "A simulation run is already in progress."
	case ErrSimulationFailed:
		return "Error running simulation."
	case ErrResultSuperseded:
		return "The result was superseded by a newer request."
	case ErrQuizActive:
		return "Quiz mode is active. Exit the quiz first."
	case ErrQuizBusy:
		return "A quiz request is already in progress."
	case ErrQuizNotAwaiting:
		return "No quiz is awaiting an answer."
	case ErrQuizFailed:
		return "Error processing the quiz."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
