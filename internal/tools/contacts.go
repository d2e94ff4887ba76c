package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tourwire/mastertour-mcp/internal/format"
	"github.com/tourwire/mastertour-mcp/internal/mastertour"
)

// GetCompanyContactsInput is the input for the get_company_contacts tool.
type GetCompanyContactsInput struct {
	CompanyID string `json:"companyId" jsonschema:"Id of the company whose contact directory to read."`
}

// CompanyContactsData is the structured output of get_company_contacts.
type CompanyContactsData struct {
	CompanyName string              `json:"companyName"`
	Departments []ContactDepartment `json:"departments"`
	Total       int                 `json:"total"`
}

// ContactDepartment groups directory contacts under one department.
type ContactDepartment struct {
	Department string                        `json:"department"`
	Contacts   []mastertour.DirectoryContact `json:"contacts"`
}

// getCompanyContacts reads a company's contact directory grouped by
// department.
func (s *Set) getCompanyContacts(ctx context.Context, in GetCompanyContactsInput) (*CompanyContactsData, string, error) {
	if strings.TrimSpace(in.CompanyID) == "" {
		return nil, "", validationf("companyId is required")
	}

	cc, err := s.client.GetCompanyContacts(ctx, in.CompanyID)
	if err != nil {
		return nil, "", err
	}

	byDept := make(map[string][]mastertour.DirectoryContact)
	for _, c := range cc.Contacts {
		dept := format.Field(c.Department)
		if dept == "" {
			dept = "Other"
		}
		byDept[dept] = append(byDept[dept], c)
	}

	depts := make([]ContactDepartment, 0, len(byDept))
	for dept, contacts := range byDept {
		sort.Slice(contacts, func(i, j int) bool { return contacts[i].Name < contacts[j].Name })
		depts = append(depts, ContactDepartment{Department: dept, Contacts: contacts})
	}
	sort.Slice(depts, func(i, j int) bool {
		if (depts[i].Department == "Other") != (depts[j].Department == "Other") {
			return depts[j].Department == "Other"
		}
		return depts[i].Department < depts[j].Department
	})

	data := &CompanyContactsData{
		CompanyName: format.Field(cc.CompanyName),
		Departments: depts,
		Total:       len(cc.Contacts),
	}
	return data, renderCompanyContacts(data), nil
}

func renderCompanyContacts(d *CompanyContactsData) string {
	name := d.CompanyName
	if name == "" {
		name = "Company"
	}
	if d.Total == 0 {
		return fmt.Sprintf("No contacts on file for %s.", name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🏢 %s — %d contact(s):\n", name, d.Total)
	for _, dept := range d.Departments {
		fmt.Fprintf(&b, "\n%s:", dept.Department)
		writeDirectory(&b, dept.Contacts)
		b.WriteString("\n")
	}
	return b.String()
}
