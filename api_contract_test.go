package main_test

import (
	"context"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI contract", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("is a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("describes every staff operation", func() {
		Expect(doc.Paths.Find("/staff")).NotTo(BeNil())
		Expect(doc.Paths.Find("/staff").Get).NotTo(BeNil())
		Expect(doc.Paths.Find("/staff").Post).NotTo(BeNil())
		Expect(doc.Paths.Find("/staff").Delete).NotTo(BeNil())
		Expect(doc.Paths.Find("/staff/{email}")).NotTo(BeNil())
		Expect(doc.Paths.Find("/staff/{email}/notification").Patch).NotTo(BeNil())
		Expect(doc.Paths.Find("/staff/{email}/undertaking").Patch).NotTo(BeNil())
		Expect(doc.Paths.Find("/staff/import").Post).NotTo(BeNil())
		Expect(doc.Paths.Find("/staff/export").Get).NotTo(BeNil())
	})

	It("keeps the portal endpoints unauthenticated", func() {
		for _, path := range []string{"/portal/lookup", "/portal/upload"} {
			item := doc.Paths.Find(path)
			Expect(item).NotTo(BeNil(), path)
			Expect(item.Post).NotTo(BeNil(), path)
			Expect(item.Post.Security).To(BeNil(), path)
		}
	})

	It("covers dashboard, departments and audit logs", func() {
		Expect(doc.Paths.Find("/dashboard").Get).NotTo(BeNil())
		Expect(doc.Paths.Find("/departments").Get).NotTo(BeNil())
		Expect(doc.Paths.Find("/departments").Post).NotTo(BeNil())
		Expect(doc.Paths.Find("/departments/{name}/members").Post).NotTo(BeNil())
		Expect(doc.Paths.Find("/departments/{name}/metadata").Put).NotTo(BeNil())
		Expect(doc.Paths.Find("/audit-logs").Get).NotTo(BeNil())
	})

	It("declares conflict semantics for a repeated portal upload", func() {
		upload := doc.Paths.Find("/portal/upload").Post
		Expect(upload.Responses.Status(http.StatusConflict)).NotTo(BeNil())
	})
})
