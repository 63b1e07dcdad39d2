package pom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/recast/pom"
	"github.com/dhamidi/recast/rewrite"
)

const propertyPom = `<project>
    <properties>
        <junit.version>4.12</junit.version>
    </properties>
    <dependencies>
        <dependency>
            <groupId>junit</groupId>
            <artifactId>junit</artifactId>
            <version>${junit.version}</version>
        </dependency>
        <dependency>
            <groupId>junit</groupId>
            <artifactId>junit-dep</artifactId>
            <version>${junit.version}</version>
        </dependency>
    </dependencies>
</project>`

func TestUpgradeDependencyVersion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		before string
		recipe *pom.UpgradeDependencyVersion
		want   string
	}{
		{
			name:   "literal version",
			before: junitPom,
			recipe: pom.NewUpgradeDependencyVersion("junit", "junit", "4.14", nil),
			want: `<project>
    <modelVersion>4.0.0</modelVersion>
    <groupId>com.example</groupId>
    <artifactId>demo</artifactId>
    <version>1.0</version>
    <dependencies>
        <dependency>
            <groupId>junit</groupId>
            <artifactId>junit</artifactId>
            <version>4.14</version>
            <scope>test</scope>
        </dependency>
    </dependencies>
</project>`,
		},
		{
			name:   "property definition",
			before: propertyPom,
			recipe: pom.NewUpgradeDependencyVersion("junit", "*", "4.13.2", nil),
			want: `<project>
    <properties>
        <junit.version>4.13.2</junit.version>
    </properties>
    <dependencies>
        <dependency>
            <groupId>junit</groupId>
            <artifactId>junit</artifactId>
            <version>${junit.version}</version>
        </dependency>
        <dependency>
            <groupId>junit</groupId>
            <artifactId>junit-dep</artifactId>
            <version>${junit.version}</version>
        </dependency>
    </dependencies>
</project>`,
		},
		{
			name: "managed dependency with wildcard",
			before: `<project>
    <dependencyManagement>
        <dependencies>
            <dependency>
                <groupId>org.springframework</groupId>
                <artifactId>spring-core</artifactId>
                <version>6.0.0</version>
            </dependency>
            <dependency>
                <groupId>org.slf4j</groupId>
                <artifactId>slf4j-api</artifactId>
                <version>2.0.0</version>
            </dependency>
        </dependencies>
    </dependencyManagement>
</project>`,
			recipe: pom.NewUpgradeDependencyVersion("org.spring*", "spring-*", "latest.release",
				versions{"org.springframework:spring-core": {"6.0.0", "6.1.5", "6.2.0-SNAPSHOT"}}),
			want: `<project>
    <dependencyManagement>
        <dependencies>
            <dependency>
                <groupId>org.springframework</groupId>
                <artifactId>spring-core</artifactId>
                <version>6.1.5</version>
            </dependency>
            <dependency>
                <groupId>org.slf4j</groupId>
                <artifactId>slf4j-api</artifactId>
                <version>2.0.0</version>
            </dependency>
        </dependencies>
    </dependencyManagement>
</project>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := rewrite.NewPipeline().Run(parsePom(t, tt.before), tt.recipe)
			require.NoError(t, res.Err)
			assert.Equal(t, tt.want, res.Fixed.Print())
			assert.Equal(t, rewrite.StatusApplied, res.Outcomes[0].Status)
		})
	}
}

func TestUpgradeDependencyVersionOnlyUpgrades(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		before string
		recipe *pom.UpgradeDependencyVersion
	}{
		{"older literal", junitPom, pom.NewUpgradeDependencyVersion("junit", "junit", "4.12", nil)},
		{"same literal", junitPom, pom.NewUpgradeDependencyVersion("junit", "junit", "4.13.2", nil)},
		{"older property", propertyPom, pom.NewUpgradeDependencyVersion("junit", "junit", "4.11", nil)},
		{"other artifact", junitPom, pom.NewUpgradeDependencyVersion("org.junit", "*", "5.0", nil)},
		{"range below current", junitPom, pom.NewUpgradeDependencyVersion("junit", "junit", "[4.0,4.13)",
			versions{"junit:junit": {"4.11", "4.12", "4.13.2"}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := rewrite.NewPipeline().Run(parsePom(t, tt.before), tt.recipe)
			require.NoError(t, res.Err)
			assert.Equal(t, tt.before, res.Fixed.Print())
			assert.Equal(t, rewrite.StatusUnchanged, res.Outcomes[0].Status)
			assert.Empty(t, res.Warnings)
		})
	}
}

func TestUpgradeDependencyVersionUnknownArtifact(t *testing.T) {
	t.Parallel()
	res := rewrite.NewPipeline().Run(parsePom(t, junitPom),
		pom.NewUpgradeDependencyVersion("junit", "junit", "latest.release", versions{}))
	require.NoError(t, res.Err)
	assert.Equal(t, junitPom, res.Fixed.Print())
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], pom.ErrMetadataNotFound)
}

func TestUpgradeDependencyVersionValidation(t *testing.T) {
	t.Parallel()
	v := pom.NewUpgradeDependencyVersion("junit", "", "(,", nil).Validate()
	require.False(t, v.IsValid())
	var got []string
	for _, f := range v.Failures() {
		got = append(got, f.Property)
	}
	assert.Equal(t, []string{"artifactId", "newVersion"}, got)
}

func TestRegister(t *testing.T) {
	t.Parallel()
	reg := rewrite.NewRegistry()
	pom.Register(reg, nil)
	assert.Equal(t, []string{pom.AddDependencyName, pom.UpgradeDependencyVersionName}, reg.Names())

	r, err := reg.Build(pom.AddDependencyName, rewrite.Options{"coordinate": "org.mockito:mockito-core:5.11.0:test"})
	require.NoError(t, err)
	assert.True(t, r.Validate().IsValid())
	res := rewrite.NewPipeline().Run(parsePom(t, junitPom), r)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Fixed.Print(), "<artifactId>mockito-core</artifactId>")

	r, err = reg.Build(pom.UpgradeDependencyVersionName, rewrite.Options{"groupId": "junit", "artifactId": "junit", "newVersion": "4.14"})
	require.NoError(t, err)
	res = rewrite.NewPipeline().Run(parsePom(t, junitPom), r)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Fixed.Print(), "<version>4.14</version>")
}
