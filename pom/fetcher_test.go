package pom_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/pom"
)

const guavaMetadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <groupId>com.google.guava</groupId>
  <artifactId>guava</artifactId>
  <versioning>
    <latest>33.1.0-jre</latest>
    <release>33.1.0-jre</release>
    <versions>
      <version>32.1.3-jre</version>
      <version>33.0.0-jre</version>
      <version>33.1.0-jre</version>
    </versions>
    <lastUpdated>20240315000000</lastUpdated>
  </versioning>
</metadata>`

func metadataServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/com/google/guava/guava/maven-metadata.xml" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, guavaMetadata)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMetadataFetcher(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := metadataServer(t, &hits)
	f := pom.NewMetadataFetcher(srv.URL + "/")

	md, err := f.Metadata(context.Background(), "com.google.guava", "guava")
	require.NoError(t, err)
	assert.Equal(t, "guava", md.ArtifactID)
	assert.Equal(t, "33.1.0-jre", md.Versioning.Release)
	assert.Equal(t, []string{"32.1.3-jre", "33.0.0-jre", "33.1.0-jre"}, md.Versioning.Versions)

	_, err = f.Metadata(context.Background(), "com.google.guava", "guava")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestMetadataFetcherNotFound(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	f := pom.NewMetadataFetcher(metadataServer(t, &hits).URL)
	_, err := f.Metadata(context.Background(), "org.example", "missing")
	assert.ErrorIs(t, err, pom.ErrMetadataNotFound)
}

func TestMetadataFetcherRepositoryFromEnvironment(t *testing.T) {
	t.Setenv(pom.EnvMavenRepoURL, "https://repo.example.com/maven2/")
	assert.Equal(t, "https://repo.example.com/maven2", pom.NewMetadataFetcher("").RepoURL)
	assert.Equal(t, "https://other.example.com", pom.NewMetadataFetcher("https://other.example.com").RepoURL)
}

func TestResolveVersion(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	f := pom.NewMetadataFetcher(metadataServer(t, &hits).URL)

	sel, err := pom.ParseSelector("[33.0,33.1)")
	require.NoError(t, err)
	v, err := pom.ResolveVersion(context.Background(), f, "com.google.guava", "guava", sel)
	require.NoError(t, err)
	assert.Equal(t, "33.0.0-jre", v)

	sel, err = pom.ParseSelector("[40,)")
	require.NoError(t, err)
	_, err = pom.ResolveVersion(context.Background(), f, "com.google.guava", "guava", sel)
	assert.ErrorIs(t, err, pom.ErrNoMatchingVersion)
}

func TestParseCoordinate(t *testing.T) {
	t.Parallel()
	d, err := pom.ParseCoordinate("junit:junit:4.13.2:test")
	require.NoError(t, err)
	assert.Equal(t, pom.Dependency{GroupID: "junit", ArtifactID: "junit", Version: "4.13.2", Scope: pom.ScopeTest}, d)

	d, err = pom.ParseCoordinate("org.slf4j:slf4j-api")
	require.NoError(t, err)
	assert.Equal(t, "org.slf4j:slf4j-api", d.Key())

	for _, bad := range []string{"junit", ":junit", "a:b:c:d:e"} {
		_, err := pom.ParseCoordinate(bad)
		assert.Error(t, err, bad)
	}
}
