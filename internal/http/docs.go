package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	productSchemaRef = "#/components/schemas/Product"
	payloadSchemaRef = "#/components/schemas/ProductPayload"
	errorSchemaRef   = "#/components/schemas/ErrorResponse"
)

// NewOpenAPI describes the product API from the route table.
func NewOpenAPI() *openapi3.T {
	productSchema := openapi3.NewObjectSchema().
		WithProperty("id_product", openapi3.NewInt64Schema()).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("qty", openapi3.NewInt32Schema()).
		WithProperty("price", openapi3.NewFloat64Schema()).
		WithProperty("description", openapi3.NewStringSchema().WithNullable()).
		WithRequired([]string{"id_product", "name", "qty", "price"})

	payloadSchema := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("qty", openapi3.NewInt32Schema()).
		WithProperty("price", openapi3.NewFloat64Schema()).
		WithProperty("description", openapi3.NewStringSchema().WithNullable()).
		WithRequired([]string{"name", "qty", "price"})

	errorSchema := openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("error", openapi3.NewObjectSchema().
			WithProperty("code", openapi3.NewInt32Schema()).
			WithProperty("message", openapi3.NewStringSchema()).
			WithProperty("details", openapi3.NewStringSchema()))

	listSchema := openapi3.NewArraySchema()
	listSchema.Items = openapi3.NewSchemaRef(productSchemaRef, productSchema)

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "ProdigiCrud API",
			Version: "0.1.0",
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"Product":        openapi3.NewSchemaRef("", productSchema),
				"ProductPayload": openapi3.NewSchemaRef("", payloadSchema),
				"ErrorResponse":  openapi3.NewSchemaRef("", errorSchema),
			},
		},
	}

	ping := openapi3.NewOperation()
	ping.OperationID = "ping"
	ping.Tags = []string{"ping"}
	ping.Summary = "Liveness of the API"
	ping.AddResponse(http.StatusOK, openapi3.NewResponse().WithDescription("Success"))
	doc.AddOperation(apiPrefix+"/ping", http.MethodGet, ping)

	for _, rt := range productRoutes {
		op := openapi3.NewOperation()
		op.OperationID = rt.operationID
		op.Tags = []string{"product"}
		op.Summary = rt.summary

		if rt.path == idPattern {
			op.AddParameter(openapi3.NewPathParameter("id").
				WithSchema(openapi3.NewInt64Schema().WithMin(0).WithMax(4294967295)))
		}
		if rt.body {
			op.RequestBody = &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithRequired(true).
					WithJSONSchemaRef(openapi3.NewSchemaRef(payloadSchemaRef, payloadSchema)),
			}
		}

		success := openapi3.NewResponse().WithDescription("Success")
		switch {
		case rt.method == http.MethodGet && rt.path == "":
			success.WithJSONSchemaRef(openapi3.NewSchemaRef("", listSchema))
		case rt.method == http.MethodGet:
			success.WithJSONSchemaRef(openapi3.NewSchemaRef(productSchemaRef, productSchema))
		}
		op.AddResponse(rt.status, success)
		op.AddResponse(http.StatusInternalServerError, openapi3.NewResponse().
			WithDescription("Server Error").
			WithJSONSchemaRef(openapi3.NewSchemaRef(errorSchemaRef, errorSchema)))
		if rt.body {
			op.AddResponse(http.StatusBadRequest, openapi3.NewResponse().WithDescription("Malformed body"))
		}

		doc.AddOperation(docPath(rt.path), rt.method, op)
	}

	return doc
}

// docPath turns a chi pattern into an OpenAPI path template.
func docPath(path string) string {
	return apiPrefix + productsPath + strings.ReplaceAll(path, idPattern, "/{id}")
}

func mustOpenAPIJSON() []byte {
	b, err := json.Marshal(NewOpenAPI())
	if err != nil {
		panic("marshal openapi document: " + err.Error())
	}
	return b
}
