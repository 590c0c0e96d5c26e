package storage

import (
	"strings"
	"testing"

	"github.com/questx-lab/taskreward/config"
	"github.com/stretchr/testify/require"
)

func Test_s3Storage_generateUploadURL(t *testing.T) {
	s, err := NewS3Storage(config.S3Configs{
		Region:         "auto",
		Endpoint:       "http://localhost:9000",
		PublicEndpoint: "https://cdn.example.com",
	})
	require.NoError(t, err)

	resp := s.generateUploadURL(&UploadObject{
		Bucket:   "evidence",
		Prefix:   "evidences",
		FileName: "../../proof.png",
	})

	require.True(t, strings.HasPrefix(resp.FileName, "evidences/"))
	require.True(t, strings.HasSuffix(resp.FileName, "-proof.png"))
	require.Equal(t, "https://cdn.example.com/evidence/"+resp.FileName, resp.Url)
}
