package domain

//region AccountNotFoundError

type AccountNotFoundError struct {
	Msg string
}

func (e *AccountNotFoundError) Error() string {
	return e.Msg
}

func (e *AccountNotFoundError) Is(target error) bool {
	_, ok := target.(*AccountNotFoundError)
	return ok
}

//endregion

//region AccountExistsError

type AccountExistsError struct {
	Msg string
}

func (e *AccountExistsError) Error() string {
	return e.Msg
}

func (e *AccountExistsError) Is(target error) bool {
	_, ok := target.(*AccountExistsError)
	return ok
}

//endregion

//region InvalidAccountError

type InvalidAccountError struct {
	Msg string
}

func (e *InvalidAccountError) Error() string {
	return e.Msg
}

func (e *InvalidAccountError) Is(target error) bool {
	_, ok := target.(*InvalidAccountError)
	return ok
}

//endregion

//region BelowMinimumError

type BelowMinimumError struct {
	Msg string
}

func (e *BelowMinimumError) Error() string {
	return e.Msg
}

func (e *BelowMinimumError) Is(target error) bool {
	_, ok := target.(*BelowMinimumError)
	return ok
}

//endregion

//region InvalidDestinationError

type InvalidDestinationError struct {
	Msg string
}

func (e *InvalidDestinationError) Error() string {
	return e.Msg
}

func (e *InvalidDestinationError) Is(target error) bool {
	_, ok := target.(*InvalidDestinationError)
	return ok
}

//endregion

//region InsufficientBalanceError

type InsufficientBalanceError struct {
	Msg string
}

func (e *InsufficientBalanceError) Error() string {
	return e.Msg
}

func (e *InsufficientBalanceError) Is(target error) bool {
	_, ok := target.(*InsufficientBalanceError)
	return ok
}

//endregion

//region IssuanceFailedError

type IssuanceFailedError struct {
	Reason string
}

func (e *IssuanceFailedError) Error() string {
	if e.Reason == "" {
		return "token issuance failed"
	}
	return "token issuance failed: " + e.Reason
}

func (e *IssuanceFailedError) Is(target error) bool {
	_, ok := target.(*IssuanceFailedError)
	return ok
}

//endregion
