package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed      = errors.New("validation failed")
	ErrPasswordTooShort      = errors.New("password is too short")
	ErrNicknameRequired      = errors.New("nickname is required")
	ErrEmailRequired         = errors.New("email is required")
	ErrCommentBodyRequired   = errors.New("comment body is required")
	ErrCommentBodyTooLong    = errors.New("comment body is too long")
	ErrMomentTitleRequired   = errors.New("moment title is required")
	ErrMomentInvalidMinute   = errors.New("moment minute must be between 0 and 150")
	ErrRatingInvalidScore    = errors.New("rating score must be between 1 and 5")
	ErrRatingMatchNotRated   = errors.New("match is not finished or was not officiated by this referee")
	ErrReportReasonRequired  = errors.New("report reason is required")
	ErrUnsupportedPhotoType  = errors.New("referee photo must be a JPEG, PNG or WebP image")
	ErrUploadsNotConfigured  = errors.New("file uploads are not configured")
	ErrInvalidSeason         = errors.New("season must be a positive year")

	// Ошибки конфликтов
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserNicknameConflict = errors.New("nickname is already in use")
	ErrRatingConflict       = errors.New("you have already rated this referee for this match")
	ErrReportConflict       = errors.New("you have already reported this comment")

	// Ошибки аутентификации и авторизации
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound    = errors.New("user not found")
	ErrLeagueNotFound  = errors.New("league not found")
	ErrRoundNotFound   = errors.New("round not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrRefereeNotFound = errors.New("referee not found")
	ErrMomentNotFound  = errors.New("moment not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrReportNotFound  = errors.New("report not found")

	// Ошибки фоновых задач
	ErrStatusUpdateFailed = errors.New("match status update failed")
	ErrFocusUpdateFailed  = errors.New("round focus update failed")
)
