package usecase

import (
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/model"
)

func toInstallmentResponse(ins model.Installment) dto.InstallmentResponse {
	return dto.InstallmentResponse{
		ID:      ins.ID,
		Number:  ins.Number,
		DueDate: ins.DueDate,
		Amount:  ins.Amount,
		Balance: ins.Balance,
		Status:  ins.Status.String(),
	}
}

func toLoanResponse(loan model.Loan, includeInstallments bool) dto.LoanResponse {
	resp := dto.LoanResponse{
		ID:               loan.ID(),
		ClientID:         loan.ClientID(),
		Principal:        loan.Principal(),
		FixedInstallment: loan.FixedInstallment(),
		InterestRatePct:  loan.InterestRatePct(),
		TotalInterest:    loan.TotalInterest(),
		TotalPayable:     loan.TotalPayable(),
		Frequency:        loan.Frequency().String(),
		InstallmentCount: loan.InstallmentCount(),
		StartDate:        loan.StartDate(),
		CompletionDate:   loan.CompletionDate(),
		Status:           loan.Status().String(),
		CreatedAt:        loan.CreatedAt(),
		UpdatedAt:        loan.UpdatedAt(),
	}
	if includeInstallments {
		installments := loan.Installments()
		resp.Installments = make([]dto.InstallmentResponse, len(installments))
		for i, ins := range installments {
			resp.Installments[i] = toInstallmentResponse(ins)
		}
	}
	return resp
}

func toClientResponse(c model.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		NationalID: c.NationalID,
		Phone:      c.Phone,
		Address:    c.Address,
		CreatedAt:  c.CreatedAt,
	}
}

func toPaymentResponse(p model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            p.ID,
		InstallmentID: p.InstallmentID,
		Amount:        p.Amount,
		Note:          p.Note,
		PaidAt:        p.PaidAt,
	}
}
