package contract

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCompany() Company {
	return Company{
		Name:     "Pujcovna Outdooru",
		Email:    "info@example.com",
		Phone:    "+420 000 000 000",
		Web:      "www.example.com",
		Address:  "Brno",
		BankIBAN: "CZ3955000000000857593001",
	}
}

func TestPaymentQRPayload(t *testing.T) {
	g := NewGenerator(testCompany())

	t.Run("Variable symbol from order number digits", func(t *testing.T) {
		payload := g.PaymentQRPayload("P2025017", 1250)
		assert.Contains(t, payload, "SPD*1.0*ACC:CZ3955000000000857593001")
		assert.Contains(t, payload, "AM:1250.00")
		assert.Contains(t, payload, "CC:CZK")
		assert.Contains(t, payload, "X-VS:2025017")
	})

	t.Run("Long numbers capped at ten digits", func(t *testing.T) {
		payload := g.PaymentQRPayload("P20251234567", 100)
		assert.Contains(t, payload, "X-VS:2025123456")
	})

	t.Run("No digits falls back to zeros", func(t *testing.T) {
		payload := g.PaymentQRPayload("draft", 100)
		assert.Contains(t, payload, "X-VS:000")
	})
}

func TestGenerate(t *testing.T) {
	g := NewGenerator(testCompany())

	data := ContractData{
		OrderNumber:     "P2025001",
		CustomerName:    "Jan Novak",
		CustomerEmail:   "jan@example.com",
		CustomerPhone:   "+420 111 222 333",
		CustomerAddress: "Olomouc 12",
		PickupLocation:  "brno",
		DateFrom:        "2025-06-01",
		DateTo:          "2025-06-02",
		TotalPrice:      250,
		TotalDeposit:    50,
		Items: []ContractItem{
			{Name: "Trek tent", Quantity: 1, Days: 2, DailyPrice: 100, Deposit: 50, TotalPrice: 250},
		},
	}

	pdf, err := g.Generate(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output should be a PDF document")
	assert.Greater(t, len(pdf), 1000)
}

func TestGenerate_ManyItemsPaginates(t *testing.T) {
	g := NewGenerator(testCompany())

	data := ContractData{
		OrderNumber:  "P2025002",
		CustomerName: "Jan Novak",
		DateFrom:     "2025-06-01",
		DateTo:       "2025-06-10",
	}
	for i := 0; i < 60; i++ {
		data.Items = append(data.Items, ContractItem{
			Name: "Sleeping bag", Quantity: 1, Days: 10, DailyPrice: 60, Deposit: 30, TotalPrice: 630,
		})
	}

	pdf, err := g.Generate(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
