package importer_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/importer"
)

var _ = Describe("ParseWorkbook", func() {
	Describe("CSV", func() {
		It("parses plain rows", func() {
			data := []byte("Email,First Name\nann@x.org,Ann\nbob@x.org,Bob\n")

			rows, err := importer.ParseWorkbook("sheet.csv", data)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[1]).To(Equal([]string{"ann@x.org", "Ann"}))
		})

		It("strips a UTF-8 BOM before the header", func() {
			data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Email\nann@x.org\n")...)

			rows, err := importer.ParseWorkbook("sheet.csv", data)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[0][0]).To(Equal("Email"))
		})

		It("tolerates rows with varying cell counts", func() {
			data := []byte("Email,First Name,Dept\nann@x.org,Ann\nbob@x.org,Bob,Radiology,extra\n")

			rows, err := importer.ParseWorkbook("sheet.csv", data)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows[1]).To(HaveLen(2))
			Expect(rows[2]).To(HaveLen(4))
		})

		It("tolerates stray quotes inside cells", func() {
			data := []byte("Email,Note\nann@x.org,said \"later\"\n")

			rows, err := importer.ParseWorkbook("sheet.csv", data)
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
		})

		It("treats unknown extensions as CSV", func() {
			rows, err := importer.ParseWorkbook("export.txt", []byte("Email\nann@x.org\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
		})
	})

	Describe("Excel", func() {
		It("reads rows from the first sheet", func() {
			f := excelize.NewFile()
			Expect(f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Email", "First Name"})).To(Succeed())
			Expect(f.SetSheetRow("Sheet1", "A2", &[]interface{}{"ann@x.org", "Ann"})).To(Succeed())

			var buf bytes.Buffer
			Expect(f.Write(&buf)).To(Succeed())

			rows, err := importer.ParseWorkbook("sheet.xlsx", buf.Bytes())
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[1][0]).To(Equal("ann@x.org"))
		})

		It("rejects bytes that are not a workbook", func() {
			_, err := importer.ParseWorkbook("sheet.xlsx", []byte("not a zip"))

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeWorkbookUnreadable))
		})
	})
})
