package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrTestNotFound        = errors.New("test not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrAlreadyFinished     = errors.New("submission already finished")
	ErrSubmissionNotYours  = errors.New("submission belongs to another user")
	ErrAudioOnlyListening  = errors.New("audio upload is only allowed for listening tests")
	ErrImportInvalidFormat = errors.New("import file is not a valid question array")
)
