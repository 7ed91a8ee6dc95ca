package services

import "strings"

type LoginState string

const (
	LoginCredentials   LoginState = "CREDENTIALS"
	LoginInviteSetup   LoginState = "INVITE_SETUP"
	LoginInviteExpired LoginState = "INVITE_EXPIRED"
	LoginAutoLogin     LoginState = "AUTO_LOGIN"
)

const (
	ErrorCodeOTPExpired = "otp_expired"
	TokenTypeInvite     = "invite"
)

// LoginParams are the query parameters of the login page plus the token
// recovered from the pending-invite cookie, if any.
type LoginParams struct {
	ErrorCode        string
	ErrorDescription string
	AccessToken      string
	Type             string
	PendingToken     string
}

type LoginEntry struct {
	State       LoginState
	AccessToken string
	Message     string
}

// ResolveLoginEntry decides the initial state of the login page. It performs
// no I/O; AUTO_LOGIN and INVITE_SETUP still require the caller to resolve the
// token with the auth provider.
func ResolveLoginEntry(params LoginParams) LoginEntry {
	errorCode := strings.TrimSpace(params.ErrorCode)
	if errorCode == ErrorCodeOTPExpired {
		return LoginEntry{
			State:   LoginInviteExpired,
			Message: strings.TrimSpace(params.ErrorDescription),
		}
	}

	tokenType := strings.ToLower(strings.TrimSpace(params.Type))
	accessToken := strings.TrimSpace(params.AccessToken)
	if accessToken == "" && tokenType == TokenTypeInvite {
		accessToken = strings.TrimSpace(params.PendingToken)
	}

	entry := LoginEntry{State: LoginCredentials}
	if errorCode != "" {
		entry.Message = strings.TrimSpace(params.ErrorDescription)
	}
	if accessToken == "" {
		return entry
	}

	if tokenType == TokenTypeInvite {
		return LoginEntry{State: LoginInviteSetup, AccessToken: accessToken}
	}
	return LoginEntry{State: LoginAutoLogin, AccessToken: accessToken}
}

func (entry LoginEntry) SubmitDisabled() bool {
	return entry.State == LoginInviteExpired
}
