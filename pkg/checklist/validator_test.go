package checklist

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-test/deep"
)

const testSourceDir = "app/src/main/java/com/shieldtechhub/shieldkids"

var testManifest = `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android">
    <uses-permission android:name="android.permission.INTERNET" />
    <uses-permission android:name="android.permission.FOREGROUND_SERVICE" />
    <uses-permission android:name="android.permission.RECEIVE_BOOT_COMPLETED" />
    <uses-permission android:name="android.permission.PACKAGE_USAGE_STATS" />
    <uses-permission android:name="android.permission.QUERY_ALL_PACKAGES" />
    <application>
        <service android:name=".common.base.ShieldMonitoringService" />
        <receiver android:name=".common.base.SystemEventReceiver" />
        <receiver android:name=".common.base.BootReceiver" />
        <receiver android:name=".common.base.ShieldDeviceAdminReceiver" />
    </application>
</manifest>
`

var testGradle = `dependencies {
    implementation("androidx.appcompat:appcompat:1.7.0")
    implementation("androidx.lifecycle:lifecycle-runtime-ktx:2.8.4")
    implementation("org.jetbrains.kotlinx:kotlinx-coroutines-android:1.8.1")
    implementation("com.google.firebase:firebase-auth")
}
`

var testKeyFiles = []string{
	"common/utils/PermissionManager.kt",
	"common/base/ShieldMonitoringService.kt",
	"common/base/SystemEventReceiver.kt",
	"common/base/ShieldDeviceAdminReceiver.kt",
	"common/utils/DeviceAdminManager.kt",
	"features/app_management/service/AppInventoryManager.kt",
	"SystemTestActivity.kt",
}

var testResources = []string{
	"layout/activity_system_test.xml",
	"layout/activity_device_admin_setup.xml",
	"xml/device_admin_policies.xml",
	"values/strings.xml",
	"values/colors.xml",
}

func compliantProject() fstest.MapFS {
	fsys := fstest.MapFS{
		"app/src/main/AndroidManifest.xml":         {Data: []byte(testManifest)},
		"app/build.gradle.kts":                     {Data: []byte(testGradle)},
		"gradle/wrapper/gradle-wrapper.properties": {Data: []byte("distributionUrl=gradle-8.7-bin.zip\n")},
	}
	for _, kf := range testKeyFiles {
		fsys[testSourceDir+"/"+kf] = &fstest.MapFile{Data: []byte("\n  package com.shieldtechhub.shieldkids\n\nclass X\n")}
	}
	for _, res := range testResources {
		fsys["app/src/main/res/"+res] = &fstest.MapFile{Data: []byte("<resources/>")}
	}
	return fsys
}

func removePrefix(fsys fstest.MapFS, prefix string) {
	for name := range fsys {
		if strings.HasPrefix(name, prefix) {
			delete(fsys, name)
		}
	}
}

func defaultValidator(t *testing.T, fsys fstest.MapFS) *Validator {
	t.Helper()
	profile, err := DefaultProfile()
	if err != nil {
		t.Fatalf("cannot load default profile: %v", err)
	}
	v, err := NewValidator(fsys, profile, nil)
	if err != nil {
		t.Fatalf("cannot create validator: %v", err)
	}
	return v
}

func findingsOf(findings []*Finding, phase Phase) []*Finding {
	var result []*Finding
	for _, f := range findings {
		if f.Phase == phase {
			result = append(result, f)
		}
	}
	return result
}

func messages(findings []*Finding) []string {
	result := []string{}
	for _, f := range findings {
		result = append(result, f.Message)
	}
	return result
}

func TestCompliantProject(t *testing.T) {
	v := defaultValidator(t, compliantProject())
	status := v.Check()
	if len(status.Errors) != 0 {
		t.Errorf("unexpected errors: %v", messages(status.Errors))
	}
	if len(status.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", messages(status.Warnings))
	}
	if len(status.Info) != 30 {
		t.Errorf("info count %d != 30", len(status.Info))
	}
	if !status.OK() {
		t.Errorf("compliant project not ok")
	}

	again := v.Check()
	if diff := deep.Equal(status, again); diff != nil {
		t.Errorf("second run differs: %v", diff)
	}
}

func TestCompliantProjectOrder(t *testing.T) {
	status := defaultValidator(t, compliantProject()).Check()
	expected := []string{
		"✓ Found: app/src/main/AndroidManifest.xml",
		"✓ Found: app/build.gradle.kts",
		"✓ Found: app/src/main/java/com/shieldtechhub/shieldkids",
		"✓ Found: app/src/main/res",
		"✓ Found: gradle/wrapper/gradle-wrapper.properties",
		"✓ Permission: android.permission.INTERNET",
	}
	if diff := deep.Equal(messages(status.Info[:len(expected)]), expected); diff != nil {
		t.Errorf("info order: %v", diff)
	}
	if last := status.Info[len(status.Info)-1].Message; last != "✓ Dependency: androidx.appcompat" {
		t.Errorf("last info '%s'", last)
	}
}

func TestMissingManifest(t *testing.T) {
	fsys := compliantProject()
	delete(fsys, "app/src/main/AndroidManifest.xml")
	status := defaultValidator(t, fsys).Check()

	manifest := findingsOf(status.All(), PhaseManifest)
	if diff := deep.Equal(messages(manifest), []string{"AndroidManifest.xml not found"}); diff != nil {
		t.Errorf("manifest findings: %v", diff)
	}
	if manifest[0].Severity != SeverityError || manifest[0].Code != C002 {
		t.Errorf("wrong finding %+v", manifest[0])
	}
	for _, f := range status.All() {
		switch f.Code {
		case I002, I003, C004, C005:
			t.Errorf("manifest sub-check ran: %s", f.Message)
		}
	}
	if status.OK() {
		t.Errorf("status ok without manifest")
	}
}

func TestMissingBuildConfig(t *testing.T) {
	fsys := compliantProject()
	delete(fsys, "app/build.gradle.kts")
	status := defaultValidator(t, fsys).Check()

	deps := findingsOf(status.All(), PhaseDependencies)
	if diff := deep.Equal(messages(deps), []string{"build.gradle.kts not found"}); diff != nil {
		t.Errorf("dependency findings: %v", diff)
	}
	if deps[0].Severity != SeverityError {
		t.Errorf("severity %s != error", deps[0].Severity)
	}
}

func TestSourceSanity(t *testing.T) {
	fsys := compliantProject()
	fsys[testSourceDir+"/common/utils/PermissionManager.kt"] = &fstest.MapFile{Data: []byte(
		"import android.Manifest\n// TODO: request at runtime\nfun x() {} //todo cleanup\n// not a to do\n")}
	status := defaultValidator(t, fsys).Check()

	expected := []string{
		"Permission management system: Missing package declaration",
		"Permission management system: 2 TODO items found",
	}
	if diff := deep.Equal(messages(status.Warnings), expected); diff != nil {
		t.Errorf("warnings: %v", diff)
	}
	if !status.OK() {
		t.Errorf("source sanity warnings must not fail the run: %v", messages(status.Errors))
	}
}

func TestMissingKeyFile(t *testing.T) {
	fsys := compliantProject()
	delete(fsys, testSourceDir+"/SystemTestActivity.kt")
	status := defaultValidator(t, fsys).Check()
	if diff := deep.Equal(messages(status.Errors), []string{"Missing System testing interface: SystemTestActivity.kt"}); diff != nil {
		t.Errorf("errors: %v", diff)
	}
	if len(status.Info) != 29 {
		t.Errorf("info count %d != 29", len(status.Info))
	}
}

func TestMissingSourceDir(t *testing.T) {
	fsys := compliantProject()
	removePrefix(fsys, testSourceDir)
	status := defaultValidator(t, fsys).Check()

	sources := findingsOf(status.All(), PhaseSources)
	if diff := deep.Equal(messages(sources), []string{"Kotlin source directory not found"}); diff != nil {
		t.Errorf("source findings: %v", diff)
	}
	structure := findingsOf(status.Errors, PhaseStructure)
	if diff := deep.Equal(messages(structure), []string{"Missing required path: " + testSourceDir}); diff != nil {
		t.Errorf("structure errors: %v", diff)
	}
}

func TestMissingResources(t *testing.T) {
	fsys := compliantProject()
	for _, res := range testResources {
		delete(fsys, "app/src/main/res/"+res)
	}
	// keep the resource directory itself
	fsys["app/src/main/res/drawable/icon.xml"] = &fstest.MapFile{Data: []byte("<vector/>")}
	status := defaultValidator(t, fsys).Check()

	if !status.OK() {
		t.Errorf("missing resources must not fail: %v", messages(status.Errors))
	}
	if len(status.Warnings) != len(testResources) {
		t.Errorf("warnings %d != %d", len(status.Warnings), len(testResources))
	}
	for i, w := range status.Warnings {
		if w.Message != "Missing resource: "+testResources[i] {
			t.Errorf("warning %d: '%s'", i, w.Message)
		}
	}
}

func TestReadFailures(t *testing.T) {
	fsys := compliantProject()
	fsys["app/src/main/AndroidManifest.xml"] = &fstest.MapFile{Data: []byte{0xff, 0xfe, 0x00, 'x'}}
	// a directory where a file is expected exists but cannot be read
	delete(fsys, testSourceDir+"/SystemTestActivity.kt")
	fsys[testSourceDir+"/SystemTestActivity.kt/stale"] = &fstest.MapFile{Data: []byte("x")}
	status := defaultValidator(t, fsys).Check()

	manifest := findingsOf(status.All(), PhaseManifest)
	if len(manifest) != 1 || manifest[0].Kind != KindReadFailure || manifest[0].Severity != SeverityError {
		t.Fatalf("manifest findings: %v", messages(manifest))
	}
	if !strings.HasPrefix(manifest[0].Message, "Error reading AndroidManifest.xml: ") {
		t.Errorf("message '%s'", manifest[0].Message)
	}

	var found bool
	for _, w := range status.Warnings {
		if strings.HasPrefix(w.Message, "Error validating System testing interface: ") {
			found = true
			if w.Kind != KindReadFailure {
				t.Errorf("kind %s != %s", w.Kind, KindReadFailure)
			}
		}
	}
	if !found {
		t.Errorf("no read failure warning: %v", messages(status.Warnings))
	}
}

func TestSeverityOverride(t *testing.T) {
	profile, err := LoadProfile([]byte(`
[manifest]
path = "AndroidManifest.xml"
permissions = ["android.permission.CAMERA"]
permissionseverity = "ERROR"
components = ["MainActivity"]
componentseverity = "warning"
`), FormatTOML)
	if err != nil {
		t.Fatalf("cannot load profile: %v", err)
	}
	v, err := NewValidator(fstest.MapFS{"AndroidManifest.xml": {Data: []byte("<manifest/>")}}, profile, nil)
	if err != nil {
		t.Fatalf("cannot create validator: %v", err)
	}
	status := v.Check()
	if diff := deep.Equal(messages(status.Errors), []string{"Missing permission: android.permission.CAMERA"}); diff != nil {
		t.Errorf("errors: %v", diff)
	}
	if diff := deep.Equal(messages(status.Warnings), []string{"Missing component: MainActivity"}); diff != nil {
		t.Errorf("warnings: %v", diff)
	}
}

func TestNewValidator(t *testing.T) {
	if _, err := NewValidator(nil, &Profile{}, nil); err == nil {
		t.Errorf("validator without filesystem")
	}
	if _, err := NewValidator(fstest.MapFS{}, nil, nil); err == nil {
		t.Errorf("validator without profile")
	}
}

func TestTODOUnicodeSpace(t *testing.T) {
	fsys := compliantProject()
	fsys[testSourceDir+"/common/utils/PermissionManager.kt"] = &fstest.MapFile{Data: []byte(
		"package com.shieldtechhub.shieldkids.common.utils\n//\vTODO tab\n//\u00a0TODO nbsp\n//\u2003todo em space\n//\u200bTODO zero width\n")}
	status := defaultValidator(t, fsys).Check()

	// U+200B is not a space
	if diff := deep.Equal(messages(status.Warnings), []string{"Permission management system: 3 TODO items found"}); diff != nil {
		t.Errorf("warnings: %v", diff)
	}
}

func TestUnnormalizedProfile(t *testing.T) {
	profile := &Profile{
		Structure: &StructureProfile{Paths: []string{"app/build.gradle.kts"}},
		Manifest: &ManifestProfile{
			Path:       "AndroidManifest.xml",
			Components: []string{"BootReceiver"},
		},
	}
	v, err := NewValidator(fstest.MapFS{"AndroidManifest.xml": {Data: []byte("<manifest/>")}}, profile, nil)
	if err != nil {
		t.Fatalf("cannot create validator: %v", err)
	}
	status := v.Check()
	expected := []string{
		"Missing required path: app/build.gradle.kts",
		"Missing component: BootReceiver",
	}
	if diff := deep.Equal(messages(status.Errors), expected); diff != nil {
		t.Errorf("errors: %v", diff)
	}
	if len(status.Info) != 0 {
		t.Errorf("info: %v", messages(status.Info))
	}
	if status.OK() {
		t.Errorf("status ok with missing required path")
	}
	if profile.Title != DefaultTitle {
		t.Errorf("title '%s' != '%s'", profile.Title, DefaultTitle)
	}

	bad := &Profile{Structure: &StructureProfile{Paths: []string{"../outside"}}}
	if _, err := NewValidator(fstest.MapFS{}, bad, nil); err == nil {
		t.Errorf("validator with path outside of project")
	}
	bad = &Profile{Manifest: &ManifestProfile{Path: "AndroidManifest.xml", ComponentSeverity: "fatal"}}
	if _, err := NewValidator(fstest.MapFS{}, bad, nil); err == nil {
		t.Errorf("validator with unknown severity")
	}
}

func TestStatusUnknownSeverity(t *testing.T) {
	status := NewStatus()
	status.Add(&Finding{Code: C001, Message: "no severity"})
	status.Add(&Finding{Code: C001, Severity: "fatal", Message: "unknown severity"})
	status.Add(&Finding{Code: I001, Severity: SeverityInfo, Message: "info"})
	if status.Count(SeverityError) != 2 || status.Count(SeverityInfo) != 1 || status.Count(SeverityWarning) != 0 {
		t.Errorf("counts %d/%d/%d != 2/0/1", status.Count(SeverityError), status.Count(SeverityWarning), status.Count(SeverityInfo))
	}
	if status.Count("fatal") != 0 {
		t.Errorf("count of unknown severity %d != 0", status.Count("fatal"))
	}
	if status.OK() {
		t.Errorf("status ok with unclassified findings")
	}
}
