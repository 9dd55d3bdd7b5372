package constants

const (
	// Form copy
	GoalFormTitle             = "Set goal"
	GoalFormDescription       = "Add activities that make you feel good and that you want to keep doing every week."
	GoalFormTitleLabel        = "Activity"
	GoalFormTitlePlaceholder  = "Exercise, meditate, etc..."
	GoalFormFrequencyLabel    = "How many times per week?"
	GoalFormFrequencyOption   = "%d times per week"
	GoalFormSubmittingMessage = "Saving..."

	// Field validation messages
	MsgTitleRequired       = "Specify the activity you wish to practice"
	MsgFrequencyNotNumber  = "Expected number, received nan"
	MsgFrequencyNotInteger = "Expected integer, received float"
	MsgFrequencyTooSmall   = "Number must be greater than or equal to 1"
	MsgFrequencyTooLarge   = "Number must be less than or equal to 7"

	// Submission notifications
	MsgGoalCreated       = "Goal created with success!"
	MsgGoalCreationError = "Error creating the goal, please try again!"
)
