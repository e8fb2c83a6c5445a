// Package tally exporta facturas como vouchers de venta en el XML de
// importación de Tally (ENVELOPE/IMPORTDATA/VOUCHER).
package tally

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	appbilling "github.com/jhoicas/azenterprise-api/internal/application/billing"
	"github.com/jhoicas/azenterprise-api/internal/domain/entity"
	"github.com/jhoicas/azenterprise-api/internal/domain/gst"
	"github.com/jhoicas/azenterprise-api/pkg/rupee"
)

// Ledgers por defecto del voucher.
const (
	DefaultSalesLedger = "Sales"
	DefaultCGSTLedger  = "Output CGST"
	DefaultSGSTLedger  = "Output SGST"
)

var _ appbilling.InvoiceXMLExporter = (*VoucherBuilder)(nil)

// VoucherBuilder construye el XML del voucher de venta.
type VoucherBuilder struct {
	SalesLedger string
	CGSTLedger  string
	SGSTLedger  string
}

// NewVoucherBuilder crea el builder con los ledgers por defecto.
func NewVoucherBuilder() *VoucherBuilder {
	return &VoucherBuilder{
		SalesLedger: DefaultSalesLedger,
		CGSTLedger:  DefaultCGSTLedger,
		SGSTLedger:  DefaultSGSTLedger,
	}
}

// ExportInvoiceXML devuelve el XML del voucher y el SHA-256 (hex) de su forma
// canónica C14N, usado como ETag.
//
// Importes: débitos negativos (cliente), créditos positivos (ventas e
// impuestos). Todos se redondean a dos decimales y el débito del cliente es
// la suma de los créditos redondeados, así el voucher siempre cuadra.
func (b *VoucherBuilder) ExportInvoiceXML(inv *entity.Invoice, company entity.CompanyProfile) ([]byte, string, error) {
	if inv == nil {
		return nil, "", fmt.Errorf("tally: factura nil")
	}
	res := gst.Compute(inv.Items)

	doc := etree.NewDocument()
	env := doc.CreateElement("ENVELOPE")
	env.CreateElement("HEADER").CreateElement("TALLYREQUEST").SetText("Import Data")

	importData := env.CreateElement("BODY").CreateElement("IMPORTDATA")
	desc := importData.CreateElement("REQUESTDESC")
	desc.CreateElement("REPORTNAME").SetText("Vouchers")
	desc.CreateElement("STATICVARIABLES").CreateElement("SVCURRENTCOMPANY").SetText(company.Name)

	msg := importData.CreateElement("REQUESTDATA").CreateElement("TALLYMESSAGE")
	msg.CreateAttr("xmlns:UDF", "TallyUDF")

	v := msg.CreateElement("VOUCHER")
	v.CreateAttr("VCHTYPE", "Sales")
	v.CreateAttr("ACTION", "Create")
	v.CreateElement("DATE").SetText(inv.Date.Format("20060102"))
	v.CreateElement("VOUCHERTYPENAME").SetText("Sales")
	v.CreateElement("VOUCHERNUMBER").SetText(inv.Number)
	v.CreateElement("PARTYLEDGERNAME").SetText(inv.Customer.Name)
	v.CreateElement("PARTYNAME").SetText(inv.Customer.Name)
	if inv.Customer.GSTIN != "" {
		v.CreateElement("PARTYGSTIN").SetText(inv.Customer.GSTIN)
	}
	if inv.Customer.Address != "" {
		v.CreateElement("BASICBUYERADDRESS.LIST").CreateElement("BASICBUYERADDRESS").SetText(inv.Customer.Address)
	}
	v.CreateElement("NARRATION").SetText(rupee.Words(res.Totals.GrandTotal))

	credits := decimal.Zero
	inventory := make([]*etree.Element, 0, len(res.Lines))
	for _, line := range res.Lines {
		amount := line.Amount.Round(2)
		credits = credits.Add(amount)
		inventory = append(inventory, b.inventoryEntry(line, amount))
	}
	cgst := res.Totals.CGSTTotal.Round(2)
	sgst := res.Totals.SGSTTotal.Round(2)
	credits = credits.Add(cgst).Add(sgst)

	// El cliente va primero, como en los vouchers exportados desde Tally.
	ledgerEntry(v, "ALLLEDGERENTRIES.LIST", inv.Customer.Name, true, credits.Neg())
	for _, e := range inventory {
		v.AddChild(e)
	}
	ledgerEntry(v, "LEDGERENTRIES.LIST", b.CGSTLedger, false, cgst)
	ledgerEntry(v, "LEDGERENTRIES.LIST", b.SGSTLedger, false, sgst)

	doc.Indent(2)
	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("tally: serializar: %w", err)
	}
	canon, err := canonicalizeXML(raw)
	if err != nil {
		return nil, "", fmt.Errorf("tally: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canon)

	out := make([]byte, 0, len(xml.Header)+len(raw))
	out = append(out, xml.Header...)
	out = append(out, raw...)
	return out, hex.EncodeToString(sum[:]), nil
}

func (b *VoucherBuilder) inventoryEntry(line gst.Line, amount decimal.Decimal) *etree.Element {
	item := line.Item
	e := etree.NewElement("ALLINVENTORYENTRIES.LIST")
	e.CreateElement("STOCKITEMNAME").SetText(item.Name)
	if item.HSNCode != "" {
		e.CreateElement("GSTHSNNAME").SetText(item.HSNCode)
	}
	e.CreateElement("ISDEEMEDPOSITIVE").SetText("No")
	e.CreateElement("RATE").SetText(item.Rate.StringFixed(2) + "/" + item.Unit)
	e.CreateElement("AMOUNT").SetText(amount.StringFixed(2))
	qty := item.Quantity.String() + " " + item.Unit
	e.CreateElement("ACTUALQTY").SetText(qty)
	e.CreateElement("BILLEDQTY").SetText(qty)
	e.CreateElement("GSTRATE").SetText(item.GSTPercent.String())

	alloc := e.CreateElement("ACCOUNTINGALLOCATIONS.LIST")
	alloc.CreateElement("LEDGERNAME").SetText(b.SalesLedger)
	alloc.CreateElement("ISDEEMEDPOSITIVE").SetText("No")
	alloc.CreateElement("AMOUNT").SetText(amount.StringFixed(2))
	return e
}

func ledgerEntry(parent *etree.Element, tag, ledger string, debit bool, amount decimal.Decimal) {
	e := parent.CreateElement(tag)
	e.CreateElement("LEDGERNAME").SetText(ledger)
	if debit {
		e.CreateElement("ISDEEMEDPOSITIVE").SetText("Yes")
		e.CreateElement("ISPARTYLEDGER").SetText("Yes")
	} else {
		e.CreateElement("ISDEEMEDPOSITIVE").SetText("No")
	}
	e.CreateElement("AMOUNT").SetText(amount.StringFixed(2))
}

func canonicalizeXML(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
