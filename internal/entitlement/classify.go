package entitlement

import (
	"context"
	"errors"
	"strings"
)

// Classify сводит ошибку магазина к коду из закрытого набора.
// Типизированная ошибка магазина несёт код сама, остальное
// классифицируется по тексту сообщения.
func Classify(err error) PurchaseErrorCode {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeNetworkError
	}
	return ClassifyMessage(err.Error())
}

// ClassifyMessage классифицирует сырой текст ошибки по подстрокам.
// Нераспознанный текст даёт CodeUnknown.
func ClassifyMessage(msg string) PurchaseErrorCode {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "network"),
		strings.Contains(m, "connection"),
		strings.Contains(m, "timeout"),
		strings.Contains(m, "unreachable"):
		return CodeNetworkError
	case strings.Contains(m, "not found"),
		strings.Contains(m, "no such product"),
		strings.Contains(m, "unknown product"):
		return CodeProductNotFound
	case strings.Contains(m, "pending"):
		return CodePaymentPending
	case strings.Contains(m, "declined"),
		strings.Contains(m, "insufficient funds"),
		strings.Contains(m, "card rejected"):
		return CodePaymentDeclined
	case strings.Contains(m, "already owned"),
		strings.Contains(m, "already subscribed"),
		strings.Contains(m, "already active"):
		return CodeAlreadyOwned
	case strings.Contains(m, "store"),
		strings.Contains(m, "internal error"),
		strings.Contains(m, "service unavailable"):
		return CodeStoreError
	default:
		return CodeUnknown
	}
}

// FriendlyMessage возвращает текст для пользователя по коду ошибки.
// Для нераспознанного кода сырое сообщение передаётся как есть.
func FriendlyMessage(code PurchaseErrorCode, raw string) string {
	switch code {
	case CodeNetworkError:
		return "sem conexão com a loja, tente novamente"
	case CodeStoreError:
		return "a loja está indisponível no momento"
	case CodeProductNotFound:
		return "plano não encontrado"
	case CodePaymentPending:
		return "pagamento em processamento"
	case CodePaymentDeclined:
		return "pagamento recusado"
	case CodeAlreadyOwned:
		return "assinatura já ativa nesta conta"
	default:
		return raw
	}
}
