package domain

type CtxKey string

const (
	KeySessionID CtxKey = "SessionID"
	KeyUserEmail CtxKey = "Email"
	KeyUserName  CtxKey = "Name"
	KeyUserRole  CtxKey = "Role"
)
