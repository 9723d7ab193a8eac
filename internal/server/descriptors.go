package server

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"google.golang.org/protobuf/reflect/protoregistry"
)

const (
	protoPath   = "tigersem/v1/checker.proto"
	ServiceName = "tigersem.v1.Checker"
	CheckMethod = "/" + ServiceName + "/Check"
)

//go:embed checker.proto
var checkerProto string

var (
	loadOnce    sync.Once
	checkerFile *desc.FileDescriptor
	loadErr     error
)

// descriptors parses the embedded service definition once and registers it
// with the global protobuf registry so that server reflection can serve it.
func descriptors() (*desc.FileDescriptor, error) {
	loadOnce.Do(func() {
		parser := protoparse.Parser{
			Accessor: protoparse.FileContentsFromMap(map[string]string{protoPath: checkerProto}),
		}
		fds, err := parser.ParseFiles(protoPath)
		if err != nil {
			loadErr = fmt.Errorf("parsing %s: %w", protoPath, err)
			return
		}
		checkerFile = fds[0]

		if _, err := protoregistry.GlobalFiles.FindFileByPath(protoPath); err != nil {
			if err := protoregistry.GlobalFiles.RegisterFile(checkerFile.UnwrapFile()); err != nil {
				loadErr = fmt.Errorf("registering %s: %w", protoPath, err)
			}
		}
	})
	return checkerFile, loadErr
}

func checkMethod() (*desc.MethodDescriptor, error) {
	fd, err := descriptors()
	if err != nil {
		return nil, err
	}
	sd := fd.FindService(ServiceName)
	if sd == nil {
		return nil, fmt.Errorf("service %s not found in %s", ServiceName, protoPath)
	}
	md := sd.FindMethodByName("Check")
	if md == nil {
		return nil, fmt.Errorf("method Check not found in %s", ServiceName)
	}
	return md, nil
}
