package contracts_test

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/reoring/fmeaskema/contracts"
)

// generateDFMEAResponse returns a DFMEA response with numNodes failure nodes,
// each carrying extraKeys undeclared extra keys.
func generateDFMEAResponse(numNodes, extraKeys int) []byte {
	var buf bytes.Buffer
	buf.WriteString(`{"baseInfo":{"name":"brake","partNo":"B-1","partName":"caliper","evaluationCriteria":"AIAG"},"nodes":[`)
	buf.WriteString(`{"uuid":0,"parentId":-1,"nodeType":"system","description":"root"}`)
	for i := 1; i <= numNodes; i++ {
		fmt.Fprintf(&buf, `,{"uuid":%d,"parentId":0,"nodeType":"failure","description":"f%d","extra":{"severity":%d`, i, i, i%10+1)
		for k := 0; k < extraKeys; k++ {
			buf.WriteString(`,"k` + strconv.Itoa(k) + `":"v"`)
		}
		buf.WriteString(`}}`)
	}
	buf.WriteString(`],"featureNet":[`)
	for i := 1; i <= numNodes; i++ {
		if i > 1 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"from":0,"to":%d,"type":1}`, i)
	}
	buf.WriteString(`]}`)
	return buf.Bytes()
}

func BenchmarkValidate_DFMEAResponse(b *testing.B) {
	for _, n := range []int{10, 1000} {
		data := generateDFMEAResponse(n, 4)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			v := contracts.NewValidator(contracts.Options{})
			ctx := context.Background()
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := contracts.Validate(ctx, v, contracts.DFMEAResponseModel, data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkNodeFilter(b *testing.B) {
	var buf bytes.Buffer
	buf.WriteString(`{"sessionId":"s","scope":"full_doc","nodes":[`)
	for i := 0; i < 1000; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"uuid":%d}`, i)
	}
	buf.WriteString(`]}`)
	data := buf.Bytes()
	ctx := context.Background()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := contracts.AnalysisRequestModel.ParseJSON(ctx, data); err != nil {
			b.Fatal(err)
		}
	}
}
