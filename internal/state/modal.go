package state

import "context"

// ModalKind identifies which modal is open. The zero value means none.
type ModalKind string

const (
	ModalNone            ModalKind = ""
	ModalCardForm        ModalKind = "card-form"
	ModalInstallmentForm ModalKind = "installment-form"
	ModalOneTimeBill     ModalKind = "one-time-bill"
	ModalProfileForm     ModalKind = "profile-form"
	ModalTransferCard    ModalKind = "transfer-card"
	ModalConfirm         ModalKind = "confirm"
)

// Severity tints a confirmation dialog.
type Severity string

const (
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ConfirmConfig describes a confirmation dialog. OnConfirm is fired without
// being awaited by the state container.
type ConfirmConfig struct {
	Title        string
	Message      string
	Severity     Severity
	ConfirmLabel string
	CancelLabel  string
	OnConfirm    func(ctx context.Context) error
}

// Modal is the single active modal, if any.
type Modal struct {
	Kind    ModalKind
	Data    any
	Confirm *ConfirmConfig
}

// Open reports whether a modal is showing.
func (m Modal) Open() bool {
	return m.Kind != ModalNone
}

// Payloads carried by the convenience openers. An empty id means "new".
type (
	CardFormData struct {
		CardID string
	}
	InstallmentFormData struct {
		InstallmentID string
	}
	OneTimeBillData struct {
		BillID string
	}
	ProfileFormData struct {
		ProfileID string
	}
	TransferCardData struct {
		CardID string
	}
)

// Modal returns the current modal state.
func (s *AppState) Modal() Modal {
	return s.modal.Get()
}

// OpenModal replaces the current modal with kind carrying data. Opening
// ModalNone closes the modal and drops data.
func (s *AppState) OpenModal(kind ModalKind, data any) {
	if kind == ModalNone {
		s.CloseModal()
		return
	}
	s.modal.Set(Modal{Kind: kind, Data: data})
}

// CloseModal dismisses whatever modal is open.
func (s *AppState) CloseModal() {
	s.modal.Set(Modal{})
}

func (s *AppState) OpenCardForm(cardID string) {
	s.OpenModal(ModalCardForm, CardFormData{CardID: cardID})
}

func (s *AppState) OpenInstallmentForm(installmentID string) {
	s.OpenModal(ModalInstallmentForm, InstallmentFormData{InstallmentID: installmentID})
}

func (s *AppState) OpenOneTimeBillModal(billID string) {
	s.OpenModal(ModalOneTimeBill, OneTimeBillData{BillID: billID})
}

func (s *AppState) OpenProfileForm(profileID string) {
	s.OpenModal(ModalProfileForm, ProfileFormData{ProfileID: profileID})
}

func (s *AppState) OpenTransferCardModal(cardID string) {
	s.OpenModal(ModalTransferCard, TransferCardData{CardID: cardID})
}

// OpenConfirmDialog shows a confirmation dialog carrying cfg as given.
func (s *AppState) OpenConfirmDialog(cfg ConfirmConfig) {
	s.modal.Set(Modal{Kind: ModalConfirm, Confirm: &cfg})
}

// Confirm is an alias for OpenConfirmDialog.
func (s *AppState) Confirm(cfg ConfirmConfig) {
	s.OpenConfirmDialog(cfg)
}

// SubscribeModal calls fn with every new modal state.
func (s *AppState) SubscribeModal(fn func(Modal)) (cancel func()) {
	return s.modal.Subscribe(fn)
}
