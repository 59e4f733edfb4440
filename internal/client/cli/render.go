package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/fraudsentry/internal/client/models"
	"github.com/dmitrijs2005/fraudsentry/internal/client/validate"
	"github.com/dmitrijs2005/fraudsentry/internal/client/views"
)

var fieldLabels = map[string]string{
	validate.FieldName:            "Name",
	validate.FieldEmail:           "Email",
	validate.FieldAddress:         "Address",
	validate.FieldMobileNumber:    "Mobile number",
	validate.FieldPassword:        "Password",
	validate.FieldConfirmPassword: "Confirm password",
	validate.FieldOTP:             "OTP",
	validate.FieldNewPassword:     "New password",
	validate.FieldAmount:          "Amount",
	views.FieldRecipient:          "Recipient",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// renderFieldErrors lists errs one per line in field order.
func renderFieldErrors(w io.Writer, errs validate.FieldErrors) {
	for _, f := range errs.Fields() {
		fmt.Fprintf(w, "  %s: %s\n", label(f), errs.Get(f))
	}
}

func renderProfile(w io.Writer, p models.Profile, deviceID string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\t%s\n", p.Name)
	fmt.Fprintf(tw, "Email\t%s\n", p.Email)
	fmt.Fprintf(tw, "Address\t%s\n", p.Address)
	fmt.Fprintf(tw, "Mobile\t%s\n", p.MobileNumber)
	fmt.Fprintf(tw, "Balance\t%s\n", views.FormatAmount(p.AmountAvailable))
	fmt.Fprintf(tw, "Device\t%s\n", deviceID)
	_ = tw.Flush()
}

// renderUsers prints a numbered recipient list. Numbers start at 1.
func renderUsers(w io.Writer, users []models.UserSummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tEMAIL\tMOBILE\tID")
	for i, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, u.Name, u.Email, u.MobileNumber, u.ID)
	}
	_ = tw.Flush()
}

func renderTransactions(w io.Writer, txns []models.Transaction) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TXN ID\tRECIPIENT\tAMOUNT\tDATE")
	for _, t := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.TxnID, t.RecipientID, views.FormatAmount(t.Amount), views.FormatDate(t.Date))
	}
	_ = tw.Flush()
}
