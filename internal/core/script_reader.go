package core

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"flutter-buildcfg/internal/ports"
	"flutter-buildcfg/internal/types"
)

// ScriptReader evaluates a Flutter app-module Gradle script into a
// BuildConfig. References to the flutter extension object are answered by
// the injected provider.
type ScriptReader struct {
	Flutter ports.FlutterProviderPort
}

func NewScriptReader(flutter ports.FlutterProviderPort) ScriptReader {
	return ScriptReader{Flutter: flutter}
}

func (r ScriptReader) Read(ctx context.Context, src string) (types.BuildConfig, error) {
	stmts, err := parseScript(src)
	if err != nil {
		return types.BuildConfig{}, err
	}
	var values types.FlutterValues
	if r.Flutter != nil {
		values, err = r.Flutter.FlutterValues(ctx)
		if err != nil {
			return types.BuildConfig{}, err
		}
	}
	ev := &scriptEvaluator{
		ctx:      ctx,
		flutter:  values,
		vars:     map[string]expr{},
		assigned: map[string]int{},
	}
	if err := ev.topLevel(stmts); err != nil {
		return types.BuildConfig{}, err
	}
	if err := RequireFields(ev.cfg); err != nil {
		return types.BuildConfig{}, err
	}
	log.Ctx(ctx).Debug().
		Str("application_id", ev.cfg.ApplicationID).
		Int("dependencies", len(ev.cfg.Dependencies)).
		Msg("build script evaluated")
	return ev.cfg, nil
}

// RequireFields reports the first absent field a descriptor cannot do
// without: applicationId and the three SDK levels.
func RequireFields(cfg types.BuildConfig) error {
	switch {
	case strings.TrimSpace(cfg.ApplicationID) == "":
		return NewMissingFieldError("applicationId")
	case cfg.CompileSdk == 0:
		return NewMissingFieldError("compileSdk")
	case cfg.MinSdk == 0:
		return NewMissingFieldError("minSdk")
	case cfg.TargetSdk == 0:
		return NewMissingFieldError("targetSdk")
	}
	return nil
}

type scriptEvaluator struct {
	ctx      context.Context
	flutter  types.FlutterValues
	vars     map[string]expr
	assigned map[string]int
	cfg      types.BuildConfig
}

// value is a resolved scalar; kind is one of exprString, exprNumber or
// exprBool.
type value struct {
	kind exprKind
	text string
}

func (e *scriptEvaluator) topLevel(stmts []statement) error {
	for _, stmt := range stmts {
		switch stmt.kind {
		case stmtDecl:
			e.vars[stmt.name] = stmt.value
		case stmtCall:
			if stmt.header() == "apply" {
				for _, arg := range stmt.callArgs() {
					if arg.name == "plugin" && arg.value.kind == exprString {
						e.cfg.PluginIDs = append(e.cfg.PluginIDs, arg.value.text)
					}
				}
			}
		case stmtBlock:
			var err error
			switch stmt.header() {
			case "plugins":
				e.plugins(stmt.body)
			case "android":
				err = e.android(stmt.body)
			case "kotlin":
				err = e.kotlin(stmt.body)
			case "flutter":
				err = e.flutterBlock(stmt.body)
			case "dependencies":
				e.dependencies(stmt.body)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *scriptEvaluator) plugins(stmts []statement) {
	for _, stmt := range stmts {
		if stmt.kind != stmtCall || len(stmt.chain) == 0 {
			continue
		}
		head := stmt.chain[0]
		switch {
		case head.name == "id":
			if id, ok := firstString(head.args, stmt.args); ok {
				e.cfg.PluginIDs = append(e.cfg.PluginIDs, id)
			}
		case head.name == "kotlin" && head.call:
			if id, ok := firstString(head.args, nil); ok {
				e.cfg.PluginIDs = append(e.cfg.PluginIDs, "org.jetbrains.kotlin."+id)
			}
		case !head.call && len(stmt.chain) == 1 && len(stmt.args) == 0:
			// Kotlin accessor form: `kotlin-android`
			e.cfg.PluginIDs = append(e.cfg.PluginIDs, head.name)
		}
	}
}

func (e *scriptEvaluator) android(stmts []statement) error {
	for _, stmt := range stmts {
		if stmt.kind == stmtBlock {
			var err error
			switch stmt.header() {
			case "compileOptions":
				err = e.compileOptions(stmt.body)
			case "kotlinOptions":
				err = e.jvmTargetBlock("android.kotlinOptions", stmt.body)
			case "defaultConfig":
				err = e.defaultConfig(stmt.body)
			case "signingConfigs":
				e.signingConfigs(stmt.body)
			case "buildTypes":
				e.buildTypes(stmt.body)
			}
			if err != nil {
				return err
			}
			continue
		}
		name, val, ok := setting(stmt)
		if !ok {
			continue
		}
		var err error
		switch name {
		case "namespace":
			err = e.setString("android.namespace", val, &e.cfg.Namespace)
		case "compileSdk", "compileSdkVersion":
			err = e.setInt("android.compileSdk", val, &e.cfg.CompileSdk)
		case "ndkVersion":
			err = e.setString("android.ndkVersion", val, &e.cfg.NdkVersion)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *scriptEvaluator) compileOptions(stmts []statement) error {
	for _, stmt := range stmts {
		name, val, ok := setting(stmt)
		if !ok {
			continue
		}
		var err error
		switch name {
		case "sourceCompatibility":
			err = e.setJava("android.compileOptions.sourceCompatibility", val, &e.cfg.SourceCompatibility)
		case "targetCompatibility":
			err = e.setJava("android.compileOptions.targetCompatibility", val, &e.cfg.TargetCompatibility)
		case "isCoreLibraryDesugaringEnabled", "coreLibraryDesugaringEnabled":
			err = e.setBool("android.compileOptions.coreLibraryDesugaringEnabled", val, &e.cfg.CoreLibraryDesugaringEnabled)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// jvmTargetBlock reads kotlinOptions { jvmTarget = ... } and
// compilerOptions { jvmTarget.set(...) }.
func (e *scriptEvaluator) jvmTargetBlock(scope string, stmts []statement) error {
	for _, stmt := range stmts {
		if stmt.kind == stmtCall && stmt.header() == "jvmTarget.set" {
			if args := stmt.callArgs(); len(args) == 1 {
				if err := e.setJava(scope+".jvmTarget", args[0].value, &e.cfg.JvmTarget); err != nil {
					return err
				}
			}
			continue
		}
		if name, val, ok := setting(stmt); ok && name == "jvmTarget" {
			if err := e.setJava(scope+".jvmTarget", val, &e.cfg.JvmTarget); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *scriptEvaluator) kotlin(stmts []statement) error {
	for _, stmt := range stmts {
		if stmt.kind == stmtBlock && stmt.header() == "compilerOptions" {
			if err := e.jvmTargetBlock("kotlin.compilerOptions", stmt.body); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *scriptEvaluator) defaultConfig(stmts []statement) error {
	for _, stmt := range stmts {
		name, val, ok := setting(stmt)
		if !ok {
			continue
		}
		var err error
		switch name {
		case "applicationId":
			err = e.setString("android.defaultConfig.applicationId", val, &e.cfg.ApplicationID)
		case "minSdk", "minSdkVersion":
			err = e.setInt("android.defaultConfig.minSdk", val, &e.cfg.MinSdk)
		case "targetSdk", "targetSdkVersion":
			err = e.setInt("android.defaultConfig.targetSdk", val, &e.cfg.TargetSdk)
		case "versionCode":
			err = e.setInt("android.defaultConfig.versionCode", val, &e.cfg.VersionCode)
		case "versionName":
			err = e.setString("android.defaultConfig.versionName", val, &e.cfg.VersionName)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *scriptEvaluator) signingConfigs(stmts []statement) {
	for _, stmt := range stmts {
		if stmt.kind != stmtBlock && stmt.kind != stmtCall {
			continue
		}
		name, declares := containerEntry(stmt)
		if name == "" || !declares {
			continue
		}
		if !containsString(e.cfg.SigningConfigs, name) {
			e.cfg.SigningConfigs = append(e.cfg.SigningConfigs, name)
		}
	}
}

func (e *scriptEvaluator) buildTypes(stmts []statement) {
	for _, stmt := range stmts {
		if stmt.kind != stmtBlock {
			continue
		}
		buildType, _ := containerEntry(stmt)
		if buildType == "" {
			continue
		}
		for _, inner := range stmt.body {
			name, val, ok := setting(inner)
			if !ok || name != "signingConfig" {
				continue
			}
			e.redefined("android.buildTypes."+buildType+".signingConfig", inner.line)
			if val.kind == exprNull {
				delete(e.cfg.BuildTypeSigning, buildType)
				continue
			}
			ref, ok := signingReference(val)
			if !ok {
				log.Ctx(e.ctx).Debug().Int("line", inner.line).Str("build_type", buildType).Msg("signing config reference not understood")
				continue
			}
			if e.cfg.BuildTypeSigning == nil {
				e.cfg.BuildTypeSigning = map[string]string{}
			}
			e.cfg.BuildTypeSigning[buildType] = ref
		}
	}
}

func (e *scriptEvaluator) flutterBlock(stmts []statement) error {
	for _, stmt := range stmts {
		if name, val, ok := setting(stmt); ok && name == "source" {
			if err := e.setString("flutter.source", val, &e.cfg.FlutterSourceRoot); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *scriptEvaluator) dependencies(stmts []statement) {
	for _, stmt := range stmts {
		if stmt.kind != stmtCall || len(stmt.chain) != 1 {
			continue
		}
		configuration := stmt.chain[0].name
		notation, ok := dependencyNotation(stmt.callArgs())
		if !ok {
			log.Ctx(e.ctx).Debug().Int("line", stmt.line).Str("configuration", configuration).Msg("skipping non-coordinate dependency")
			continue
		}
		e.cfg.Dependencies = append(e.cfg.Dependencies, types.Dependency{
			Configuration: configuration,
			Coordinate:    notation,
		})
	}
}

// dependencyNotation accepts "g:a:v" and Groovy's map notation
// group: 'g', name: 'a', version: 'v'.
func dependencyNotation(args []argument) (string, bool) {
	if len(args) == 1 && args[0].name == "" && args[0].value.kind == exprString {
		return args[0].value.text, true
	}
	named := map[string]string{}
	for _, arg := range args {
		if arg.name != "" && arg.value.kind == exprString {
			named[arg.name] = arg.value.text
		}
	}
	if named["group"] == "" || named["name"] == "" || named["version"] == "" {
		return "", false
	}
	return named["group"] + ":" + named["name"] + ":" + named["version"], true
}

// setting extracts name/value from `name = value`, Groovy `name value`
// and the method form `name(value)`.
func setting(stmt statement) (string, expr, bool) {
	switch stmt.kind {
	case stmtAssign:
		return stmt.header(), stmt.value, true
	case stmtCall:
		if len(stmt.chain) != 1 {
			return "", expr{}, false
		}
		args := stmt.callArgs()
		if len(args) != 1 || args[0].name != "" {
			return "", expr{}, false
		}
		return stmt.chain[0].name, args[0].value, true
	}
	return "", expr{}, false
}

// containerEntry names the element a named-container statement addresses
// and whether it declares a new element (create/register) or configures an
// existing one (getByName/named).
func containerEntry(stmt statement) (string, bool) {
	if len(stmt.chain) != 1 {
		return "", false
	}
	head := stmt.chain[0]
	if !head.call {
		if stmt.kind == stmtBlock && len(stmt.args) == 0 {
			return head.name, true
		}
		return "", false
	}
	name, ok := firstString(head.args, nil)
	if !ok {
		return "", false
	}
	switch head.name {
	case "create", "register", "maybeCreate":
		return name, true
	case "getByName", "named", "getAt":
		return name, false
	}
	return "", false
}

// signingReference resolves signingConfigs.getByName("x"),
// signingConfigs["x"], signingConfigs.named("x").get() and Groovy's
// signingConfigs.x.
func signingReference(x expr) (string, bool) {
	if x.kind != exprChain || len(x.chain) < 2 || x.chain[0].name != "signingConfigs" {
		return "", false
	}
	next := x.chain[1]
	if next.call {
		switch next.name {
		case "getByName", "named", "getAt":
			return firstString(next.args, nil)
		}
		return "", false
	}
	return next.name, true
}

func firstString(parenArgs []argument, commandArgs []argument) (string, bool) {
	args := parenArgs
	if len(args) == 0 {
		args = commandArgs
	}
	if len(args) == 0 || args[0].value.kind != exprString {
		return "", false
	}
	return args[0].value.text, true
}

func (e *scriptEvaluator) redefined(field string, line int) {
	if prev, ok := e.assigned[field]; ok {
		log.Ctx(e.ctx).Warn().
			Str("field", field).
			Int("line", line).
			Int("previous_line", prev).
			Msg("setting redefined, last assignment wins")
	}
	e.assigned[field] = line
}

// unset records an assignment whose value cannot be resolved. It still
// replaces any earlier value, which then counts as absent.
func (e *scriptEvaluator) unset(field string, line int) {
	log.Ctx(e.ctx).Debug().Str("field", field).Int("line", line).Msg("value not resolvable, field left unset")
	e.redefined(field, line)
}

func (e *scriptEvaluator) setString(field string, x expr, dst *string) error {
	v, ok := e.resolve(x, 0)
	if !ok {
		e.unset(field, x.line)
		*dst = ""
		return nil
	}
	if v.kind == exprBool {
		return NewParseError(x.line, "%s expects a string, got %s", field, v.text)
	}
	e.redefined(field, x.line)
	*dst = v.text
	return nil
}

func (e *scriptEvaluator) setInt(field string, x expr, dst *int) error {
	v, ok := e.resolve(x, 0)
	if !ok {
		e.unset(field, x.line)
		*dst = 0
		return nil
	}
	if v.kind != exprNumber {
		return NewParseError(x.line, "%s expects an integer, got %q", field, v.text)
	}
	n, err := strconv.Atoi(v.text)
	if err != nil {
		return NewParseError(x.line, "%s expects an integer, got %q", field, v.text)
	}
	e.redefined(field, x.line)
	*dst = n
	return nil
}

func (e *scriptEvaluator) setBool(field string, x expr, dst *bool) error {
	v, ok := e.resolve(x, 0)
	if !ok {
		e.unset(field, x.line)
		*dst = false
		return nil
	}
	if v.kind != exprBool {
		return NewParseError(x.line, "%s expects true or false, got %q", field, v.text)
	}
	e.redefined(field, x.line)
	*dst = v.text == "true"
	return nil
}

func (e *scriptEvaluator) setJava(field string, x expr, dst *types.JavaVersion) error {
	var raw string
	if v, ok := e.resolve(x, 0); ok {
		raw = v.text
	} else if x.kind == exprChain {
		raw = javaReference(x.chain)
	}
	if raw == "" {
		e.unset(field, x.line)
		*dst = types.JavaVersionUnset
		return nil
	}
	parsed, err := ParseJavaVersion(raw)
	if err != nil {
		return NewParseError(x.line, "%s: %v", field, err)
	}
	e.redefined(field, x.line)
	*dst = parsed
	return nil
}

// javaReference flattens JavaVersion.VERSION_17(.toString()),
// JvmTarget.JVM_17 and JavaVersion.toVersion(17) to a parseable string.
func javaReference(chain []segment) string {
	if len(chain) < 2 {
		return ""
	}
	switch chain[0].name {
	case "JavaVersion", "JvmTarget":
	default:
		return ""
	}
	second := chain[1]
	if second.call {
		if (second.name == "toVersion" || second.name == "fromTarget") && len(second.args) == 1 {
			arg := second.args[0].value
			if arg.kind == exprString || arg.kind == exprNumber {
				return arg.text
			}
		}
		return ""
	}
	for _, seg := range chain[2:] {
		if !isConversion(seg.name) {
			return ""
		}
	}
	return chain[0].name + "." + second.name
}

func (e *scriptEvaluator) resolve(x expr, depth int) (value, bool) {
	if depth > 8 {
		return value{}, false
	}
	switch x.kind {
	case exprString, exprNumber, exprBool:
		return convert(value{kind: x.kind, text: x.text}, x.chain)
	case exprChain:
	default:
		return value{}, false
	}
	head := x.chain[0]
	switch {
	case head.name == "flutter" && !head.call && len(x.chain) >= 2 && !x.chain[1].call:
		v, ok := e.flutterProperty(x.chain[1].name)
		if !ok {
			return value{}, false
		}
		return convert(v, x.chain[2:])
	case !head.call:
		if decl, ok := e.vars[head.name]; ok {
			if v, ok := e.resolve(decl, depth+1); ok {
				return convert(v, x.chain[1:])
			}
		}
	}
	// localProperties.getProperty("flutter.versionCode"), localProperties["flutter.versionCode"]
	for i, seg := range x.chain {
		if seg.call && (seg.name == "getProperty" || seg.name == "getAt") {
			key, ok := firstString(seg.args, nil)
			if !ok || !strings.HasPrefix(key, "flutter.") {
				return value{}, false
			}
			v, ok := e.flutterProperty(strings.TrimPrefix(key, "flutter."))
			if !ok {
				return value{}, false
			}
			return convert(v, x.chain[i+1:])
		}
	}
	return value{}, false
}

func (e *scriptEvaluator) flutterProperty(name string) (value, bool) {
	number := func(n int) (value, bool) {
		if n == 0 {
			return value{}, false
		}
		return value{kind: exprNumber, text: strconv.Itoa(n)}, true
	}
	text := func(s string) (value, bool) {
		if s == "" {
			return value{}, false
		}
		return value{kind: exprString, text: s}, true
	}
	switch name {
	case "compileSdkVersion", "compileSdk":
		return number(e.flutter.CompileSdkVersion)
	case "minSdkVersion", "minSdk":
		return number(e.flutter.MinSdkVersion)
	case "targetSdkVersion", "targetSdk":
		return number(e.flutter.TargetSdkVersion)
	case "ndkVersion":
		return text(e.flutter.NdkVersion)
	case "versionCode":
		return number(e.flutter.VersionCode)
	case "versionName":
		return text(e.flutter.VersionName)
	}
	return value{}, false
}

func convert(v value, calls []segment) (value, bool) {
	for _, seg := range calls {
		switch seg.name {
		case "toInt", "toInteger", "toLong":
			if _, err := strconv.Atoi(v.text); err != nil {
				return value{}, false
			}
			v.kind = exprNumber
		case "toString", "trim":
			if v.kind == exprString {
				v.text = strings.TrimSpace(v.text)
			}
			v.kind = exprString
		default:
			return value{}, false
		}
	}
	return v, true
}

func isConversion(name string) bool {
	switch name {
	case "toInt", "toInteger", "toLong", "toString", "trim":
		return true
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
