package agentservice

import "errors"

var (
	// ErrAgentNotApproved возвращается, когда агент не найден или не одобрен
	ErrAgentNotApproved = errors.New("agent is not approved")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("agentservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("agentservice client: invalid response")
)
