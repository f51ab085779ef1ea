package provider

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appcontainers/armappcontainers/v3"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/artpar/ttdeploy/internal/core/deployment"
)

// =============================================================================
// Azure Request Builders (Pure - no I/O)
// =============================================================================

func azureTags(tags map[string]string) map[string]*string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]*string, len(tags))
	for k, v := range tags {
		out[k] = to.Ptr(v)
	}
	return out
}

func resourceGroupEnvelope(location string, tags map[string]string) armresources.ResourceGroup {
	return armresources.ResourceGroup{
		Location: to.Ptr(location),
		Tags:     azureTags(tags),
	}
}

func managedEnvironmentEnvelope(location string, tags map[string]string) armappcontainers.ManagedEnvironment {
	return armappcontainers.ManagedEnvironment{
		Location: to.Ptr(location),
		Tags:     azureTags(tags),
		Properties: &armappcontainers.ManagedEnvironmentProperties{
			ZoneRedundant: to.Ptr(false),
		},
	}
}

// containerAppEnvelope builds the create-or-update body of one app.
// Plan volumes become EmptyDir volumes: Container Apps has no named local
// volumes without environment storage.
func containerAppEnvelope(app deployment.AppPlan, location, environmentID string) armappcontainers.ContainerApp {
	c := app.Container

	container := &armappcontainers.Container{
		Name:  to.Ptr(c.Name),
		Image: to.Ptr(c.Image),
		Resources: &armappcontainers.ContainerResources{
			CPU:    to.Ptr(c.CPUCores),
			Memory: to.Ptr(deployment.MemoryQuantity(c.MemoryGiB)),
		},
	}
	for _, a := range c.Args {
		container.Args = append(container.Args, to.Ptr(a))
	}
	for _, e := range c.Env {
		v := &armappcontainers.EnvironmentVar{Name: to.Ptr(e.Name)}
		if e.SecretRef != "" {
			v.SecretRef = to.Ptr(e.SecretRef)
		} else {
			v.Value = to.Ptr(e.Value)
		}
		container.Env = append(container.Env, v)
	}

	template := &armappcontainers.Template{
		Containers: []*armappcontainers.Container{container},
		Scale: &armappcontainers.Scale{
			MinReplicas: to.Ptr(app.MinReplicas),
			MaxReplicas: to.Ptr(app.MaxReplicas),
		},
	}
	if c.Volume != nil {
		container.VolumeMounts = []*armappcontainers.VolumeMount{{
			VolumeName: to.Ptr(c.Volume.Name),
			MountPath:  to.Ptr(c.Volume.Target),
		}}
		template.Volumes = []*armappcontainers.Volume{{
			Name:        to.Ptr(c.Volume.Name),
			StorageType: to.Ptr(armappcontainers.StorageTypeEmptyDir),
		}}
	}

	ingress := &armappcontainers.Ingress{
		External:   to.Ptr(app.Ingress.External),
		TargetPort: to.Ptr(int32(app.Ingress.TargetPort)),
		Transport:  to.Ptr(ingressTransport(app.Ingress.Transport)),
	}
	if app.Ingress.ExposedPort != 0 {
		ingress.ExposedPort = to.Ptr(int32(app.Ingress.ExposedPort))
	}

	config := &armappcontainers.Configuration{
		ActiveRevisionsMode: to.Ptr(armappcontainers.ActiveRevisionsModeSingle),
		Ingress:             ingress,
	}
	for _, s := range app.Secrets {
		config.Secrets = append(config.Secrets, &armappcontainers.Secret{
			Name:  to.Ptr(s.Name),
			Value: to.Ptr(s.Value),
		})
	}

	return armappcontainers.ContainerApp{
		Location: to.Ptr(location),
		Tags:     azureTags(app.Labels),
		Properties: &armappcontainers.ContainerAppProperties{
			ManagedEnvironmentID: to.Ptr(environmentID),
			Configuration:        config,
			Template:             template,
		},
	}
}

func ingressTransport(t deployment.Transport) armappcontainers.IngressTransportMethod {
	if t == deployment.TransportTCP {
		return armappcontainers.IngressTransportMethodTCP
	}
	return armappcontainers.IngressTransportMethodAuto
}

// appEndpoint returns https://<fqdn> of a provisioned app, or "" when the
// ingress has no FQDN yet.
func appEndpoint(app armappcontainers.ContainerApp) string {
	p := app.Properties
	if p == nil || p.Configuration == nil || p.Configuration.Ingress == nil {
		return ""
	}
	fqdn := p.Configuration.Ingress.Fqdn
	if fqdn == nil || *fqdn == "" {
		return ""
	}
	return "https://" + *fqdn
}
